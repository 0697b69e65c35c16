package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// RecordService manages earnings and expenses
type RecordService struct {
	store  store.Store
	shifts *ShiftService
	events Events
	now    Clock
}

func NewRecordService(s store.Store, shifts *ShiftService, events Events, now Clock) *RecordService {
	if events == nil {
		events = NopEvents{}
	}
	return &RecordService{store: s, shifts: shifts, events: events, now: now.orDefault()}
}

// ParseDate accepts RFC3339 or a YYYY-MM-DD calendar date in now's location.
// An empty string means now.
func ParseDate(value string, now time.Time) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Unix(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Unix(), nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, now.Location()); err == nil {
		return t.Unix(), nil
	}
	return 0, validationError("invalid date %q", value)
}

func (s *RecordService) AddEarning(ctx context.Context, userID string, req models.CreateEarningRequest) (*models.Earning, error) {
	if err := validAmount("amount", req.Amount, false); err != nil {
		return nil, err
	}
	if !req.WorkType.Valid() {
		return nil, validationError("unknown work type %q", req.WorkType)
	}
	if !req.PaymentMethod.Valid() {
		return nil, validationError("unknown payment method %q", req.PaymentMethod)
	}
	now := s.now()
	date, err := ParseDate(req.Date, now)
	if err != nil {
		return nil, err
	}

	// Linked to whatever shift is open right now; never re-linked later
	shiftID, err := openShiftID(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	earning := &models.Earning{
		ID:            uuid.New().String(),
		UserID:        userID,
		ShiftID:       shiftID,
		Date:          date,
		Amount:        req.Amount,
		WorkType:      req.WorkType,
		Neighborhood:  strings.TrimSpace(req.Neighborhood),
		PaymentMethod: req.PaymentMethod,
		Note:          trimmedOrNil(req.Note),
		CreatedAt:     now.Unix(),
	}
	if err := s.store.CreateEarning(ctx, earning); err != nil {
		return nil, fmt.Errorf("create earning: %w", err)
	}

	log.Printf("✅ Earning %s recorded for user %s (shift=%v)", earning.ID, userID, shiftLabel(shiftID))
	s.changed(ctx, userID, RecordChange{Kind: "earning", Action: "created", ID: earning.ID, Record: earning})
	return earning, nil
}

func (s *RecordService) AddExpense(ctx context.Context, userID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	if err := validAmount("amount", req.Amount, false); err != nil {
		return nil, err
	}
	if !req.Category.Valid() {
		return nil, validationError("unknown expense category %q", req.Category)
	}
	description, err := validName("description", req.Description)
	if err != nil {
		return nil, err
	}
	now := s.now()
	date, err := ParseDate(req.Date, now)
	if err != nil {
		return nil, err
	}
	shiftID, err := openShiftID(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		ShiftID:     shiftID,
		Date:        date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: description,
		CreatedAt:   now.Unix(),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	log.Printf("✅ Expense %s recorded for user %s (shift=%v)", expense.ID, userID, shiftLabel(shiftID))
	s.changed(ctx, userID, RecordChange{Kind: "expense", Action: "created", ID: expense.ID, Record: expense})
	return expense, nil
}

// DeleteEarning removes the record only. A closed shift keeps its stored totals.
func (s *RecordService) DeleteEarning(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteEarning(ctx, userID, id); err != nil {
		return fmt.Errorf("delete earning %s: %w", id, err)
	}
	s.changed(ctx, userID, RecordChange{Kind: "earning", Action: "deleted", ID: id})
	return nil
}

func (s *RecordService) DeleteExpense(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	s.changed(ctx, userID, RecordChange{Kind: "expense", Action: "deleted", ID: id})
	return nil
}

func (s *RecordService) ListEarnings(ctx context.Context, userID string) ([]models.Earning, error) {
	earnings, err := s.store.ListEarnings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list earnings: %w", err)
	}
	if earnings == nil {
		earnings = []models.Earning{}
	}
	return earnings, nil
}

func (s *RecordService) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// changed publishes the record change and, when an open shift exists, its
// refreshed running summary
func (s *RecordService) changed(ctx context.Context, userID string, change RecordChange) {
	s.events.RecordChanged(ctx, userID, change)
	publishSummary(ctx, s.shifts, s.events, userID)
}

func publishSummary(ctx context.Context, shifts *ShiftService, events Events, userID string) {
	if shifts == nil {
		return
	}
	summary, err := shifts.Current(ctx, userID)
	if err != nil {
		log.Printf("⚠️  Could not refresh shift summary for %s: %v", userID, err)
		return
	}
	if summary.Shift != nil {
		events.SummaryChanged(ctx, userID, summary)
	}
}

func shiftLabel(id *string) string {
	if id == nil {
		return "none"
	}
	return *id
}
