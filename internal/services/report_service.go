package services

import (
	"context"
	"errors"
	"fmt"

	"motoboy-backend/internal/models"
	"motoboy-backend/internal/reports"
	"motoboy-backend/internal/store"
)

// Dashboard is everything the home screen shows in one payload
type Dashboard struct {
	Current reports.ShiftSummary `json:"current"`
	Monthly reports.Totals       `json:"monthly"`
	Goal    reports.Goal         `json:"goal"`
}

// ReportService loads records and hands them to the reports package
type ReportService struct {
	store  store.Store
	shifts *ShiftService
	now    Clock
}

func NewReportService(s store.Store, shifts *ShiftService, now Clock) *ReportService {
	return &ReportService{store: s, shifts: shifts, now: now.orDefault()}
}

func (s *ReportService) records(ctx context.Context, userID string) ([]models.Earning, []models.Expense, error) {
	earnings, err := s.store.ListEarnings(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list earnings: %w", err)
	}
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list expenses: %w", err)
	}
	return earnings, expenses, nil
}

func (s *ReportService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	current, err := s.shifts.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	earnings, expenses, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}

	var goal *float64
	profile, err := s.store.GetProfile(ctx, userID)
	switch {
	case err == nil:
		goal = profile.MonthlyGoal
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("get profile: %w", err)
	}

	monthly := reports.Monthly(s.now(), earnings, expenses)
	return &Dashboard{
		Current: current,
		Monthly: monthly,
		Goal:    reports.GoalProgress(goal, monthly.Profit),
	}, nil
}

func (s *ReportService) Report(ctx context.Context, userID string, kind reports.Kind) (*reports.PeriodReport, error) {
	earnings, expenses, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	shifts, err := s.store.ListShifts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	report := reports.Period(kind, s.now(), earnings, expenses, shifts)
	return &report, nil
}
