package services

import (
	"context"

	"motoboy-backend/internal/models"
	"motoboy-backend/internal/reports"
)

// RecordChange describes a created or deleted record
type RecordChange struct {
	Kind   string      `json:"kind"`   // earning, expense, delivery, neighborhood, establishment
	Action string      `json:"action"` // created, updated, deleted
	ID     string      `json:"id"`
	Record interface{} `json:"record,omitempty"`
}

// Events receives notifications after a write has been confirmed by the
// store. Implementations must not fail the caller.
type Events interface {
	ShiftStarted(ctx context.Context, shift *models.Shift)
	ShiftClosed(ctx context.Context, shift *models.Shift)
	GoalReached(ctx context.Context, userID string, goal reports.Goal)
	RecordChanged(ctx context.Context, userID string, change RecordChange)
	SummaryChanged(ctx context.Context, userID string, summary reports.ShiftSummary)
}

// NopEvents discards every event
type NopEvents struct{}

func (NopEvents) ShiftStarted(context.Context, *models.Shift)                  {}
func (NopEvents) ShiftClosed(context.Context, *models.Shift)                   {}
func (NopEvents) GoalReached(context.Context, string, reports.Goal)            {}
func (NopEvents) RecordChanged(context.Context, string, RecordChange)          {}
func (NopEvents) SummaryChanged(context.Context, string, reports.ShiftSummary) {}
