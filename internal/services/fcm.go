package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/reports"
)

// FCMService handles Firebase Cloud Messaging
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates a new FCM service instance from a credentials file
func NewFCMService(credentialsFile string) (*FCMService, error) {
	ctx := context.Background()

	// Initialize Firebase app
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	// Get messaging client
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// NewFCMServiceFromBase64 creates a new FCM service instance from base64-encoded credentials
// This is useful for cloud deployments (Railway, Fly.io, Render) where you can't upload files easily
func NewFCMServiceFromBase64(credentialsBase64 string) (*FCMService, error) {
	ctx := context.Background()

	// Decode base64 credentials
	credentialsJSON, err := base64.StdEncoding.DecodeString(credentialsBase64)
	if err != nil {
		return nil, fmt.Errorf("error decoding base64 credentials: %w", err)
	}

	// Initialize Firebase app with JSON credentials
	opt := option.WithCredentialsJSON(credentialsJSON)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	// Get messaging client
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return &FCMService{client: client}, nil
}

// SendShiftClosedNotification tells the rider how the shift they just closed went
func (s *FCMService) SendShiftClosedNotification(ctx context.Context, tokens []string, shift *models.Shift) error {
	return s.SendMulticast(ctx, tokens,
		"Turno encerrado",
		fmt.Sprintf("Lucro do turno: %s", reports.FormatBRL(shift.ProfitTotal)),
		map[string]string{
			"type":     "shift_closed",
			"shift_id": shift.ID,
			"earnings": strconv.FormatFloat(shift.EarningsTotal, 'f', 2, 64),
			"expenses": strconv.FormatFloat(shift.ExpensesTotal, 'f', 2, 64),
			"profit":   strconv.FormatFloat(shift.ProfitTotal, 'f', 2, 64),
		})
}

// SendGoalReachedNotification congratulates the rider on hitting the monthly goal
func (s *FCMService) SendGoalReachedNotification(ctx context.Context, tokens []string, goal reports.Goal) error {
	return s.SendMulticast(ctx, tokens,
		"Meta do mês batida! 🎯",
		fmt.Sprintf("Você lucrou %s de uma meta de %s", reports.FormatBRL(goal.Profit), reports.FormatBRL(goal.Goal)),
		map[string]string{
			"type":   "goal_reached",
			"goal":   strconv.FormatFloat(goal.Goal, 'f', 2, 64),
			"profit": strconv.FormatFloat(goal.Profit, 'f', 2, 64),
		})
}

// SendMulticast sends the same message to multiple tokens
func (s *FCMService) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					ContentAvailable: true,
					Sound:            "default",
				},
			},
		},
	}

	response, err := s.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending multicast message: %w", err)
	}

	log.Printf("✅ Multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)
	return nil
}

var _ Pusher = (*FCMService)(nil)
