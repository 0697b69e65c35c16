package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/reports"
	"motoboy-backend/internal/store"
)

// ShiftService owns the open/close lifecycle of work shifts
type ShiftService struct {
	store  store.Store
	events Events
	now    Clock
}

func NewShiftService(s store.Store, events Events, now Clock) *ShiftService {
	if events == nil {
		events = NopEvents{}
	}
	return &ShiftService{store: s, events: events, now: now.orDefault()}
}

// Start opens a new shift. Only one shift per user may be open at a time.
func (s *ShiftService) Start(ctx context.Context, userID string, req models.StartShiftRequest) (*models.Shift, error) {
	open, err := s.store.OpenShift(ctx, userID)
	if err == nil && open.IsOpen() {
		return nil, fmt.Errorf("%w: shift %s started at %d", ErrShiftAlreadyOpen, open.ID, open.StartTime)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check open shift: %w", err)
	}

	now := s.now()
	shift := &models.Shift{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: now.Unix(),
		Status:    models.ShiftStatusOpen,
		Label:     trimmedOrNil(req.Label),
		CreatedAt: now.Unix(),
	}

	if id := trimmedOrNil(req.EstablishmentID); id != nil {
		est, err := s.store.GetEstablishment(ctx, userID, *id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, validationError("establishment %s does not exist", *id)
		}
		if err != nil {
			return nil, fmt.Errorf("load establishment: %w", err)
		}
		if !est.Active {
			return nil, validationError("establishment %s is inactive", est.Name)
		}
		rate := est.DailyRate
		shift.EstablishmentID = &est.ID
		shift.DailyRate = &rate
	}

	if err := s.store.CreateShift(ctx, shift); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// lost a race with a concurrent start
			return nil, fmt.Errorf("%w: %v", ErrShiftAlreadyOpen, err)
		}
		return nil, fmt.Errorf("create shift: %w", err)
	}

	log.Printf("✅ Shift %s started for user %s", shift.ID, userID)
	s.events.ShiftStarted(ctx, shift)
	return shift, nil
}

// End closes the open shift, freezing its totals in a single write
func (s *ShiftService) End(ctx context.Context, userID string) (*models.Shift, error) {
	shift, err := s.store.OpenShift(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoOpenShift
	}
	if err != nil {
		return nil, fmt.Errorf("load open shift: %w", err)
	}

	earnings, err := s.store.ListShiftEarnings(ctx, userID, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("list shift earnings: %w", err)
	}
	expenses, err := s.store.ListShiftExpenses(ctx, userID, shift.ID)
	if err != nil {
		return nil, fmt.Errorf("list shift expenses: %w", err)
	}

	totals := reports.ShiftTotals(shift.ID, earnings, expenses)
	closed := *shift
	end := s.now().Unix()
	closed.EndTime = &end
	closed.Status = models.ShiftStatusClosed
	closed.EarningsTotal = totals.Earnings
	closed.ExpensesTotal = totals.Expenses
	closed.ProfitTotal = totals.Profit

	if err := s.store.CloseShift(ctx, &closed); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoOpenShift
		}
		return nil, fmt.Errorf("close shift: %w", err)
	}

	log.Printf("✅ Shift %s closed: earnings=%s expenses=%s profit=%s",
		closed.ID, reports.FormatBRL(totals.Earnings), reports.FormatBRL(totals.Expenses), reports.FormatBRL(totals.Profit))

	s.events.ShiftClosed(ctx, &closed)
	s.checkGoal(ctx, &closed)
	return &closed, nil
}

// checkGoal fires GoalReached when this shift is the one that crossed the goal
func (s *ShiftService) checkGoal(ctx context.Context, closed *models.Shift) {
	profile, err := s.store.GetProfile(ctx, closed.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("⚠️  Could not load profile for goal check: %v", err)
		}
		return
	}
	earnings, err := s.store.ListEarnings(ctx, closed.UserID)
	if err != nil {
		log.Printf("⚠️  Could not load earnings for goal check: %v", err)
		return
	}
	expenses, err := s.store.ListExpenses(ctx, closed.UserID)
	if err != nil {
		log.Printf("⚠️  Could not load expenses for goal check: %v", err)
		return
	}

	monthly := reports.Monthly(s.now(), earnings, expenses)
	goal := reports.GoalProgress(profile.MonthlyGoal, monthly.Profit)
	before := reports.GoalProgress(profile.MonthlyGoal, monthly.Profit-closed.ProfitTotal)
	if goal.Reached() && !before.Reached() {
		log.Printf("🎯 User %s reached the monthly goal of %s", closed.UserID, reports.FormatBRL(goal.Goal))
		s.events.GoalReached(ctx, closed.UserID, goal)
	}
}

// Current returns the open shift, if any, with its running totals
func (s *ShiftService) Current(ctx context.Context, userID string) (reports.ShiftSummary, error) {
	open, err := s.store.OpenShift(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return reports.ShiftSummary{}, nil
	}
	if err != nil {
		return reports.ShiftSummary{}, fmt.Errorf("load open shift: %w", err)
	}
	return s.summarize(ctx, open)
}

func (s *ShiftService) summarize(ctx context.Context, open *models.Shift) (reports.ShiftSummary, error) {
	earnings, err := s.store.ListShiftEarnings(ctx, open.UserID, open.ID)
	if err != nil {
		return reports.ShiftSummary{}, fmt.Errorf("list shift earnings: %w", err)
	}
	expenses, err := s.store.ListShiftExpenses(ctx, open.UserID, open.ID)
	if err != nil {
		return reports.ShiftSummary{}, fmt.Errorf("list shift expenses: %w", err)
	}
	deliveries, err := s.store.ListShiftDeliveries(ctx, open.UserID, open.ID)
	if err != nil {
		return reports.ShiftSummary{}, fmt.Errorf("list shift deliveries: %w", err)
	}
	return reports.CurrentShift(s.now(), open, earnings, expenses, deliveries), nil
}

// History lists every shift, newest first
func (s *ShiftService) History(ctx context.Context, userID string) ([]models.Shift, error) {
	shifts, err := s.store.ListShifts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	if shifts == nil {
		shifts = []models.Shift{}
	}
	return shifts, nil
}

// Get returns a shift with the records linked to it
func (s *ShiftService) Get(ctx context.Context, userID, id string) (*models.ShiftDetails, error) {
	shift, err := s.store.GetShift(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get shift %s: %w", id, err)
	}
	details := &models.ShiftDetails{Shift: *shift}
	if details.Earnings, err = s.store.ListShiftEarnings(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("list shift earnings: %w", err)
	}
	if details.Expenses, err = s.store.ListShiftExpenses(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("list shift expenses: %w", err)
	}
	if details.Deliveries, err = s.store.ListShiftDeliveries(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("list shift deliveries: %w", err)
	}
	if details.Earnings == nil {
		details.Earnings = []models.Earning{}
	}
	if details.Expenses == nil {
		details.Expenses = []models.Expense{}
	}
	if details.Deliveries == nil {
		details.Deliveries = []models.Delivery{}
	}
	return details, nil
}

// openShiftID returns the id of the open shift or nil
func openShiftID(ctx context.Context, s store.ShiftStore, userID string) (*string, error) {
	open, err := s.OpenShift(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load open shift: %w", err)
	}
	id := open.ID
	return &id, nil
}
