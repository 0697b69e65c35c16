// Package worker consumes shift.closed messages and exports each closed
// shift as a spreadsheet row
package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"motoboy-backend/internal/amqp"
	"motoboy-backend/internal/export"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// ShiftLoader is the read side the worker needs
type ShiftLoader interface {
	GetShift(ctx context.Context, userID, id string) (*models.Shift, error)
}

type ExportWorker struct {
	shifts ShiftLoader
	sheet  export.RowAppender
	loc    *time.Location
}

func NewExportWorker(shifts ShiftLoader, sheet export.RowAppender, loc *time.Location) *ExportWorker {
	return &ExportWorker{shifts: shifts, sheet: sheet, loc: loc}
}

// HandleShiftClosed appends the shift to the sheet. A returned error requeues
// the message; shifts that no longer exist or are still open are skipped.
func (w *ExportWorker) HandleShiftClosed(ctx context.Context, msg *amqp.ShiftClosedMessage) error {
	shift, err := w.shifts.GetShift(ctx, msg.UserID, msg.ShiftID)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("⚠️  Shift %s not found, skipping export", msg.ShiftID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load shift %s: %w", msg.ShiftID, err)
	}
	if shift.IsOpen() {
		log.Printf("⚠️  Shift %s is still open, skipping export", shift.ID)
		return nil
	}

	if err := w.sheet.AppendRow(ctx, export.ShiftRow(shift, w.loc)); err != nil {
		return fmt.Errorf("export shift %s: %w", shift.ID, err)
	}
	log.Printf("✅ Exported shift %s for user %s", shift.ID, shift.UserID)
	return nil
}
