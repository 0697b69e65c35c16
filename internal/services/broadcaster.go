package services

import (
	"context"
	"log"

	"motoboy-backend/internal/models"
	"motoboy-backend/internal/reports"
	"motoboy-backend/internal/store"
)

// Notifier delivers a typed message to a user's live connection
type Notifier interface {
	BroadcastToUser(userID, msgType string, data interface{})
}

// ShiftPublisher announces closed shifts on the message bus
type ShiftPublisher interface {
	PublishShiftClosed(ctx context.Context, shiftID, userID string) error
}

// Pusher sends mobile push notifications
type Pusher interface {
	SendShiftClosedNotification(ctx context.Context, tokens []string, shift *models.Shift) error
	SendGoalReachedNotification(ctx context.Context, tokens []string, goal reports.Goal) error
}

// Broadcaster fans events out to the websocket hub and, when configured,
// to AMQP and FCM. Failures are logged and never returned.
type Broadcaster struct {
	hub       Notifier
	publisher ShiftPublisher
	pusher    Pusher
	tokens    store.ProfileStore
}

func NewBroadcaster(hub Notifier) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// WithPublisher enables shift.closed publication
func (b *Broadcaster) WithPublisher(p ShiftPublisher) *Broadcaster {
	b.publisher = p
	return b
}

// WithPusher enables push notifications to the tokens registered in s
func (b *Broadcaster) WithPusher(p Pusher, s store.ProfileStore) *Broadcaster {
	b.pusher = p
	b.tokens = s
	return b
}

var _ Events = (*Broadcaster)(nil)

func (b *Broadcaster) send(userID, msgType string, data interface{}) {
	if b.hub != nil {
		b.hub.BroadcastToUser(userID, msgType, data)
	}
}

func (b *Broadcaster) ShiftStarted(ctx context.Context, shift *models.Shift) {
	b.send(shift.UserID, "shift_update", shift)
}

func (b *Broadcaster) ShiftClosed(ctx context.Context, shift *models.Shift) {
	b.send(shift.UserID, "shift_update", shift)

	// The request may finish before delivery completes
	ctx = context.WithoutCancel(ctx)

	if b.publisher != nil {
		if err := b.publisher.PublishShiftClosed(ctx, shift.ID, shift.UserID); err != nil {
			log.Printf("⚠️  Failed to publish shift.closed for %s: %v", shift.ID, err)
		}
	}

	if tokens := b.deviceTokens(ctx, shift.UserID); len(tokens) > 0 {
		if err := b.pusher.SendShiftClosedNotification(ctx, tokens, shift); err != nil {
			log.Printf("⚠️  Failed to push shift closed notification: %v", err)
		}
	}
}

func (b *Broadcaster) GoalReached(ctx context.Context, userID string, goal reports.Goal) {
	b.send(userID, "goal_reached", goal)

	ctx = context.WithoutCancel(ctx)
	if tokens := b.deviceTokens(ctx, userID); len(tokens) > 0 {
		if err := b.pusher.SendGoalReachedNotification(ctx, tokens, goal); err != nil {
			log.Printf("⚠️  Failed to push goal notification: %v", err)
		}
	}
}

func (b *Broadcaster) RecordChanged(ctx context.Context, userID string, change RecordChange) {
	b.send(userID, "record_update", change)
}

func (b *Broadcaster) SummaryChanged(ctx context.Context, userID string, summary reports.ShiftSummary) {
	b.send(userID, "summary_update", summary)
}

func (b *Broadcaster) deviceTokens(ctx context.Context, userID string) []string {
	if b.pusher == nil || b.tokens == nil {
		return nil
	}
	list, err := b.tokens.ListDeviceTokens(ctx, userID)
	if err != nil {
		log.Printf("⚠️  Failed to load device tokens for %s: %v", userID, err)
		return nil
	}
	tokens := make([]string, 0, len(list))
	for _, t := range list {
		tokens = append(tokens, t.Token)
	}
	return tokens
}
