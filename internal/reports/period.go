package reports

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"motoboy-backend/internal/models"
)

// Kind selects the interval and bucketing of a period report
type Kind string

const (
	PeriodDaily   Kind = "daily"
	PeriodWeekly  Kind = "weekly"
	PeriodMonthly Kind = "monthly"
)

var ErrUnknownPeriod = errors.New("unknown report period")

// ParsePeriod accepts the English names and the Portuguese ones used by the app
func ParsePeriod(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "diario", "diário":
		return PeriodDaily, nil
	case "weekly", "semanal":
		return PeriodWeekly, nil
	case "monthly", "mensal":
		return PeriodMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Buckets is the fixed series length for the period
func (k Kind) Buckets() int {
	switch k {
	case PeriodDaily:
		return 24
	case PeriodWeekly:
		return 7
	case PeriodMonthly:
		return 30
	}
	return 0
}

var weekdayAbbrev = [...]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

type Bucket struct {
	Label    string  `json:"label"`
	Start    int64   `json:"start"`
	Earnings float64 `json:"earnings"`
	Expenses float64 `json:"expenses"`
}

type Breakdown struct {
	Key    string  `json:"key"`
	Amount float64 `json:"amount"`
}

type PeriodReport struct {
	Period             Kind        `json:"period"`
	Start              int64       `json:"start"`
	End                int64       `json:"end"`
	Series             []Bucket    `json:"series"`
	Totals             Totals      `json:"totals"`
	EarningsByWorkType []Breakdown `json:"earnings_by_work_type"`
	ExpensesByCategory []Breakdown `json:"expenses_by_category"`
	DaysWorked         int         `json:"days_worked"`
	AveragePerDay      float64     `json:"average_per_day"`
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

// Interval returns the closed [start, end] range of the period ending at now
func (k Kind) Interval(now time.Time) (time.Time, time.Time) {
	switch k {
	case PeriodWeekly:
		return startOfDay(now.AddDate(0, 0, -6)), endOfDay(now)
	case PeriodMonthly:
		return startOfDay(now.AddDate(0, 0, -29)), endOfDay(now)
	default:
		return startOfDay(now), endOfDay(now)
	}
}

// Period builds the report for kind. Series always has kind.Buckets() entries
// and buckets without records report zero.
func Period(kind Kind, now time.Time, earnings []models.Earning, expenses []models.Expense, shifts []models.Shift) PeriodReport {
	loc := now.Location()
	start, end := kind.Interval(now)
	from, to := start.Unix(), end.Unix()

	series := make([]Bucket, kind.Buckets())
	dayIndex := map[string]int{}
	for i := range series {
		if kind == PeriodDaily {
			h := time.Date(start.Year(), start.Month(), start.Day(), i, 0, 0, 0, loc)
			series[i] = Bucket{Label: fmt.Sprintf("%dh", i), Start: h.Unix()}
			continue
		}
		day := start.AddDate(0, 0, i)
		label := day.Format("02/01")
		if kind == PeriodWeekly {
			label = weekdayAbbrev[day.Weekday()]
		}
		series[i] = Bucket{Label: label, Start: day.Unix()}
		dayIndex[day.Format("2006-01-02")] = i
	}

	bucketOf := func(unix int64) int {
		t := time.Unix(unix, 0).In(loc)
		if kind == PeriodDaily {
			return t.Hour()
		}
		if i, ok := dayIndex[t.Format("2006-01-02")]; ok {
			return i
		}
		return -1
	}
	inRange := func(unix int64) bool { return unix >= from && unix <= to }

	report := PeriodReport{Period: kind, Start: from, End: to, Series: series}

	var totalEarnings, totalExpenses float64
	byWorkType := map[models.WorkType]float64{}
	for _, e := range earnings {
		if !inRange(e.Date) {
			continue
		}
		totalEarnings += e.Amount
		byWorkType[e.WorkType] += e.Amount
		if i := bucketOf(e.Date); i >= 0 {
			series[i].Earnings += e.Amount
		}
	}
	byCategory := map[models.ExpenseCategory]float64{}
	for _, x := range expenses {
		if !inRange(x.Date) {
			continue
		}
		totalExpenses += x.Amount
		byCategory[x.Category] += x.Amount
		if i := bucketOf(x.Date); i >= 0 {
			series[i].Expenses += x.Amount
		}
	}

	report.Totals = newTotals(totalEarnings, totalExpenses)
	report.EarningsByWorkType = []Breakdown{}
	for _, wt := range models.WorkTypes {
		if v, ok := byWorkType[wt]; ok {
			report.EarningsByWorkType = append(report.EarningsByWorkType, Breakdown{Key: string(wt), Amount: v})
		}
	}
	report.ExpensesByCategory = []Breakdown{}
	for _, c := range models.ExpenseCategories {
		if v, ok := byCategory[c]; ok {
			report.ExpensesByCategory = append(report.ExpensesByCategory, Breakdown{Key: string(c), Amount: v})
		}
	}

	for _, s := range shifts {
		if inRange(s.StartTime) {
			report.DaysWorked++
		}
	}
	if report.DaysWorked > 0 {
		report.AveragePerDay = totalEarnings / float64(report.DaysWorked)
	}
	return report
}
