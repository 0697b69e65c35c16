// Package reports turns raw shift, earning and expense records into the
// summaries shown on the dashboard and reports screens. Every function is
// pure: callers pass the records and the current instant, whose location is
// used as the local wall clock.
package reports

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"motoboy-backend/internal/models"
)

// Totals is an {earnings, expenses, profit} triple
type Totals struct {
	Earnings float64 `json:"earnings"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

func newTotals(earnings, expenses float64) Totals {
	return Totals{Earnings: earnings, Expenses: expenses, Profit: earnings - expenses}
}

// ShiftSummary is the running state of the open shift
type ShiftSummary struct {
	Shift           *models.Shift `json:"shift"`
	Totals          Totals        `json:"totals"`
	Deliveries      int           `json:"deliveries"`
	DeliveryFees    float64       `json:"delivery_fees"`
	DurationSeconds int64         `json:"duration_seconds"`
}

// ShiftTotals sums the records linked to shiftID in the order given
func ShiftTotals(shiftID string, earnings []models.Earning, expenses []models.Expense) Totals {
	var e, x float64
	for _, r := range earnings {
		if r.ShiftID != nil && *r.ShiftID == shiftID {
			e += r.Amount
		}
	}
	for _, r := range expenses {
		if r.ShiftID != nil && *r.ShiftID == shiftID {
			x += r.Amount
		}
	}
	return newTotals(e, x)
}

// CurrentShift summarizes the open shift, or returns zeros when open is nil
func CurrentShift(now time.Time, open *models.Shift, earnings []models.Earning, expenses []models.Expense, deliveries []models.Delivery) ShiftSummary {
	if !open.IsOpen() {
		return ShiftSummary{}
	}
	summary := ShiftSummary{
		Shift:           open,
		Totals:          ShiftTotals(open.ID, earnings, expenses),
		DurationSeconds: int64(open.Duration(now) / time.Second),
	}
	for _, d := range deliveries {
		if d.ShiftID == nil || *d.ShiftID != open.ID {
			continue
		}
		summary.Deliveries++
		if d.Fee != nil {
			summary.DeliveryFees += *d.Fee
		}
	}
	return summary
}

// StartOfMonth is local midnight on the first day of now's month
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Monthly sums every record dated on or after the first day of the current month
func Monthly(now time.Time, earnings []models.Earning, expenses []models.Expense) Totals {
	from := StartOfMonth(now).Unix()
	var e, x float64
	for _, r := range earnings {
		if r.Date >= from {
			e += r.Amount
		}
	}
	for _, r := range expenses {
		if r.Date >= from {
			x += r.Amount
		}
	}
	return newTotals(e, x)
}

// Goal is progress towards the monthly profit goal
type Goal struct {
	HasGoal   bool    `json:"has_goal"`
	Goal      float64 `json:"goal"`
	Profit    float64 `json:"profit"`
	Percent   float64 `json:"percent"`
	Remaining float64 `json:"remaining"`
}

// GoalProgress clamps the percentage to [0, 100]. A nil or non-positive goal
// reports no goal.
func GoalProgress(goal *float64, monthlyProfit float64) Goal {
	if goal == nil || *goal <= 0 {
		return Goal{Profit: monthlyProfit}
	}
	pct := monthlyProfit / *goal * 100
	pct = math.Max(0, math.Min(100, pct))
	return Goal{
		HasGoal:   true,
		Goal:      *goal,
		Profit:    monthlyProfit,
		Percent:   pct,
		Remaining: math.Max(0, *goal-monthlyProfit),
	}
}

// Reached reports whether the goal has been met
func (g Goal) Reached() bool {
	return g.HasGoal && g.Profit >= g.Goal
}

// FormatBRL renders an amount the way the app shows money, e.g. "R$ 1.234,50"
func FormatBRL(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), frac)
}
