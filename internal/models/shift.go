package models

import (
	"database/sql"
	"time"
)

// ShiftStatus represents the current status of a shift
type ShiftStatus string

const (
	ShiftStatusOpen   ShiftStatus = "open"   // Shift in progress, records attach to it
	ShiftStatusClosed ShiftStatus = "closed" // Ended, totals frozen
)

// Shift represents a rider's work session
type Shift struct {
	ID              string      `json:"id" db:"id"`
	UserID          string      `json:"user_id" db:"user_id"`
	StartTime       int64       `json:"start_time" db:"start_time"`
	EndTime         *int64      `json:"end_time" db:"end_time"`
	Status          ShiftStatus `json:"status" db:"status"`
	Label           *string     `json:"label" db:"label"`
	EstablishmentID *string     `json:"establishment_id" db:"establishment_id"`
	DailyRate       *float64    `json:"daily_rate" db:"daily_rate"`
	EarningsTotal   float64     `json:"earnings_total" db:"earnings_total"`
	ExpensesTotal   float64     `json:"expenses_total" db:"expenses_total"`
	ProfitTotal     float64     `json:"profit_total" db:"profit_total"`
	CreatedAt       int64       `json:"created_at" db:"created_at"`
}

// IsOpen reports whether records created now should attach to this shift
func (s *Shift) IsOpen() bool {
	return s != nil && s.Status == ShiftStatusOpen
}

// Duration returns the elapsed time of the shift, up to now when still open
func (s *Shift) Duration(now time.Time) time.Duration {
	end := now.Unix()
	if s.EndTime != nil {
		end = *s.EndTime
	}
	seconds := end - s.StartTime
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds) * time.Second
}

// StartShiftRequest is the body of POST /api/shifts/start
type StartShiftRequest struct {
	Label           *string `json:"label"`
	EstablishmentID *string `json:"establishment_id"`
}

// ShiftDetails is a shift together with everything linked to it
type ShiftDetails struct {
	Shift      Shift      `json:"shift"`
	Earnings   []Earning  `json:"earnings"`
	Expenses   []Expense  `json:"expenses"`
	Deliveries []Delivery `json:"deliveries"`
}

// ToNullInt64 converts a pointer to int64 to sql.NullInt64
func ToNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

// FromNullInt64 converts sql.NullInt64 to pointer to int64
func FromNullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

// ToNullString converts a pointer to string to sql.NullString
func ToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

// FromNullString converts sql.NullString to pointer to string
func FromNullString(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

// StringPtr returns nil for blank strings
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
