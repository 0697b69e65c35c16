package reports

import (
	"errors"
	"testing"
	"time"

	"motoboy-backend/internal/models"
)

var brt = time.FixedZone("BRT", -3*3600)

func ptr[T any](v T) *T { return &v }

func at(year int, month time.Month, day, hour, min int) int64 {
	return time.Date(year, month, day, hour, min, 0, 0, brt).Unix()
}

func TestShiftTotalsOnlyLinkedRecords(t *testing.T) {
	shiftID := "s1"
	other := "s0"
	earnings := []models.Earning{
		{ShiftID: &shiftID, Amount: 50},
		{ShiftID: &shiftID, Amount: 30},
		{ShiftID: &other, Amount: 1000},
		{Amount: 7},
	}
	expenses := []models.Expense{{ShiftID: &shiftID, Amount: 20}}

	got := ShiftTotals(shiftID, earnings, expenses)
	want := Totals{Earnings: 80, Expenses: 20, Profit: 60}
	if got != want {
		t.Fatalf("ShiftTotals = %+v, want %+v", got, want)
	}
}

func TestShiftTotalsSumsInInputOrder(t *testing.T) {
	shiftID := "s1"
	amounts := []float64{0.1, 0.2, 0.3}
	var earnings []models.Earning
	var want float64
	for _, a := range amounts {
		earnings = append(earnings, models.Earning{ShiftID: &shiftID, Amount: a})
		want += a
	}
	got := ShiftTotals(shiftID, earnings, nil)
	if got.Earnings != want || got.Profit != want {
		t.Fatalf("expected exact left-to-right sum %v, got %+v", want, got)
	}
}

func TestCurrentShiftWithoutOpenShift(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, brt)
	closed := &models.Shift{ID: "s1", Status: models.ShiftStatusClosed}
	for _, open := range []*models.Shift{nil, closed} {
		got := CurrentShift(now, open, []models.Earning{{Amount: 10}}, nil, nil)
		if got.Shift != nil || got.Totals != (Totals{}) {
			t.Fatalf("expected zero summary, got %+v", got)
		}
	}
}

func TestCurrentShiftCountsDeliveries(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, brt)
	open := &models.Shift{ID: "s1", Status: models.ShiftStatusOpen, StartTime: now.Add(-2 * time.Hour).Unix()}
	deliveries := []models.Delivery{
		{ShiftID: ptr("s1"), Fee: ptr(7.0)},
		{ShiftID: ptr("s1")},
		{ShiftID: ptr("s0"), Fee: ptr(9.0)},
	}
	earnings := []models.Earning{{ShiftID: ptr("s1"), Amount: 40}}
	expenses := []models.Expense{{ShiftID: ptr("s1"), Amount: 15}}

	got := CurrentShift(now, open, earnings, expenses, deliveries)
	if got.Deliveries != 2 || got.DeliveryFees != 7 {
		t.Fatalf("unexpected delivery counts: %+v", got)
	}
	if got.Totals.Profit != 25 || got.DurationSeconds != 7200 {
		t.Fatalf("unexpected totals: %+v", got)
	}
}

func TestMonthlyFromFirstDayOfMonth(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, brt)
	earnings := []models.Earning{
		{Date: at(2025, 3, 1, 0, 0), Amount: 100},
		{Date: at(2025, 2, 28, 23, 59), Amount: 500},
		{Date: at(2025, 3, 14, 18, 0), Amount: 50},
	}
	expenses := []models.Expense{
		{Date: at(2025, 3, 2, 8, 0), Amount: 30},
		{Date: at(2025, 1, 2, 8, 0), Amount: 99},
	}

	first := Monthly(now, earnings, expenses)
	want := Totals{Earnings: 150, Expenses: 30, Profit: 120}
	if first != want {
		t.Fatalf("Monthly = %+v, want %+v", first, want)
	}
	if second := Monthly(now, earnings, expenses); second != first {
		t.Fatalf("Monthly is not idempotent: %+v vs %+v", first, second)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		name    string
		goal    *float64
		profit  float64
		hasGoal bool
		percent float64
		reached bool
	}{
		{"no goal", nil, 500, false, 0, false},
		{"zero goal", ptr(0.0), 500, false, 0, false},
		{"half way", ptr(1000.0), 500, true, 50, false},
		{"over goal clamps", ptr(1000.0), 1500, true, 100, true},
		{"negative profit clamps", ptr(1000.0), -200, true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GoalProgress(tt.goal, tt.profit)
			if g.HasGoal != tt.hasGoal || g.Percent != tt.percent || g.Reached() != tt.reached {
				t.Errorf("GoalProgress = %+v (reached=%v)", g, g.Reached())
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{12.5, "R$ 12,50"},
		{1234.5, "R$ 1.234,50"},
		{1000000, "R$ 1.000.000,00"},
		{-7.5, "-R$ 7,50"},
	}
	for _, tt := range tests {
		if got := FormatBRL(tt.in); got != tt.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := map[string]Kind{
		"daily": PeriodDaily, "diario": PeriodDaily,
		"weekly": PeriodWeekly, "Semanal": PeriodWeekly,
		"monthly": PeriodMonthly, "mensal": PeriodMonthly,
	}
	for in, want := range tests {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParsePeriod("yearly"); !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("expected ErrUnknownPeriod, got %v", err)
	}
}
