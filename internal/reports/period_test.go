package reports

import (
	"testing"
	"time"

	"motoboy-backend/internal/models"
)

func TestPeriodSeriesHaveFixedLength(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, brt)
	for kind, want := range map[Kind]int{PeriodDaily: 24, PeriodWeekly: 7, PeriodMonthly: 30} {
		r := Period(kind, now, nil, nil, nil)
		if len(r.Series) != want {
			t.Errorf("%s: len(series) = %d, want %d", kind, len(r.Series), want)
		}
		for _, b := range r.Series {
			if b.Earnings != 0 || b.Expenses != 0 {
				t.Errorf("%s: empty bucket %q is not zero", kind, b.Label)
			}
		}
		if len(r.EarningsByWorkType) != 0 || r.DaysWorked != 0 || r.AveragePerDay != 0 {
			t.Errorf("%s: unexpected non-empty report %+v", kind, r)
		}
	}
}

func TestDailyPeriodBucketsByHour(t *testing.T) {
	now := time.Date(2025, 3, 15, 22, 0, 0, 0, brt)
	earnings := []models.Earning{
		{Date: at(2025, 3, 15, 0, 0), Amount: 10, WorkType: models.WorkTypeApp},
		{Date: at(2025, 3, 15, 12, 30), Amount: 20, WorkType: models.WorkTypeMarmita},
		{Date: at(2025, 3, 15, 12, 45), Amount: 5, WorkType: models.WorkTypeApp},
		{Date: at(2025, 3, 15, 23, 59), Amount: 1, WorkType: models.WorkTypeApp},
		{Date: at(2025, 3, 14, 23, 59), Amount: 100, WorkType: models.WorkTypeApp},
	}
	r := Period(PeriodDaily, now, earnings, nil, nil)

	if r.Series[0].Label != "0h" || r.Series[23].Label != "23h" {
		t.Fatalf("unexpected labels %q..%q", r.Series[0].Label, r.Series[23].Label)
	}
	if r.Series[0].Earnings != 10 || r.Series[12].Earnings != 25 || r.Series[23].Earnings != 1 {
		t.Fatalf("unexpected hourly series: %+v", r.Series)
	}
	if r.Totals.Earnings != 36 {
		t.Fatalf("expected yesterday excluded, total=%v", r.Totals.Earnings)
	}
	// enum order, present keys only
	if len(r.EarningsByWorkType) != 2 || r.EarningsByWorkType[0].Key != "Marmita" || r.EarningsByWorkType[1].Key != "App" {
		t.Fatalf("unexpected breakdown: %+v", r.EarningsByWorkType)
	}
}

func TestWeeklyPeriodUsesWeekdayLabels(t *testing.T) {
	// Saturday
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, brt)
	expenses := []models.Expense{
		{Date: at(2025, 3, 9, 0, 0), Amount: 30, Category: models.CategoryFuel},
		{Date: at(2025, 3, 8, 23, 59), Amount: 99, Category: models.CategoryFuel},
		{Date: at(2025, 3, 15, 20, 0), Amount: 12, Category: models.CategoryFine},
	}
	r := Period(PeriodWeekly, now, nil, expenses, nil)

	wantLabels := []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}
	for i, l := range wantLabels {
		if r.Series[i].Label != l {
			t.Fatalf("label[%d] = %q, want %q", i, r.Series[i].Label, l)
		}
	}
	if r.Series[0].Expenses != 30 || r.Series[6].Expenses != 12 {
		t.Fatalf("unexpected weekly series: %+v", r.Series)
	}
	if r.Totals.Expenses != 42 || r.Totals.Profit != -42 {
		t.Fatalf("unexpected totals: %+v", r.Totals)
	}
	if len(r.ExpensesByCategory) != 2 || r.ExpensesByCategory[0].Key != "Combustível" || r.ExpensesByCategory[1].Key != "Multa" {
		t.Fatalf("unexpected categories: %+v", r.ExpensesByCategory)
	}
}

func TestMonthlyPeriodDaysWorkedAndAverage(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, brt)
	earnings := []models.Earning{
		{Date: at(2025, 2, 14, 9, 0), Amount: 100, WorkType: models.WorkTypePizzaria},
		{Date: at(2025, 3, 15, 9, 0), Amount: 200, WorkType: models.WorkTypePizzaria},
		{Date: at(2025, 2, 13, 9, 0), Amount: 999, WorkType: models.WorkTypePizzaria},
	}
	shifts := []models.Shift{
		{StartTime: at(2025, 2, 14, 8, 0)},
		{StartTime: at(2025, 3, 15, 8, 0)},
		{StartTime: at(2025, 2, 1, 8, 0)},
	}
	r := Period(PeriodMonthly, now, earnings, nil, shifts)

	if r.Series[0].Label != "14/02" || r.Series[29].Label != "15/03" {
		t.Fatalf("unexpected labels %q..%q", r.Series[0].Label, r.Series[29].Label)
	}
	if r.Series[0].Earnings != 100 || r.Series[29].Earnings != 200 {
		t.Fatalf("unexpected monthly series ends: %+v %+v", r.Series[0], r.Series[29])
	}
	if r.DaysWorked != 2 || r.AveragePerDay != 150 {
		t.Fatalf("days worked %d avg %v", r.DaysWorked, r.AveragePerDay)
	}
}
