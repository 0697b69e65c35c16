// Package store defines the persistence ports shared by the SQL and
// in-memory backends. Every method is scoped to a single user id.
package store

import (
	"context"
	"errors"

	"motoboy-backend/internal/models"
)

// ErrNotFound is returned when a row does not exist for the given user
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write collides with a unique constraint,
// such as a second open shift or a profile that already exists
var ErrConflict = errors.New("record already exists")

type ShiftStore interface {
	CreateShift(ctx context.Context, s *models.Shift) error
	// OpenShift returns ErrNotFound when the user has no open shift
	OpenShift(ctx context.Context, userID string) (*models.Shift, error)
	GetShift(ctx context.Context, userID, id string) (*models.Shift, error)
	// ListShifts orders by start time, newest first
	ListShifts(ctx context.Context, userID string) ([]models.Shift, error)
	// CloseShift persists status, end time and totals of an open shift in one write
	CloseShift(ctx context.Context, s *models.Shift) error
}

type RecordStore interface {
	CreateEarning(ctx context.Context, e *models.Earning) error
	DeleteEarning(ctx context.Context, userID, id string) error
	// ListEarnings orders by date, newest first
	ListEarnings(ctx context.Context, userID string) ([]models.Earning, error)
	// ListShiftEarnings orders by creation, oldest first
	ListShiftEarnings(ctx context.Context, userID, shiftID string) ([]models.Earning, error)

	CreateExpense(ctx context.Context, e *models.Expense) error
	DeleteExpense(ctx context.Context, userID, id string) error
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)
	ListShiftExpenses(ctx context.Context, userID, shiftID string) ([]models.Expense, error)
}

type ReferenceStore interface {
	CreateNeighborhood(ctx context.Context, n *models.Neighborhood) error
	UpdateNeighborhood(ctx context.Context, n *models.Neighborhood) error
	DeleteNeighborhood(ctx context.Context, userID, id string) error
	GetNeighborhood(ctx context.Context, userID, id string) (*models.Neighborhood, error)
	// ListNeighborhoods orders by name
	ListNeighborhoods(ctx context.Context, userID string) ([]models.Neighborhood, error)

	CreateEstablishment(ctx context.Context, e *models.Establishment) error
	UpdateEstablishment(ctx context.Context, e *models.Establishment) error
	DeleteEstablishment(ctx context.Context, userID, id string) error
	GetEstablishment(ctx context.Context, userID, id string) (*models.Establishment, error)
	ListEstablishments(ctx context.Context, userID string) ([]models.Establishment, error)
}

type DeliveryStore interface {
	CreateDelivery(ctx context.Context, d *models.Delivery) error
	DeleteDelivery(ctx context.Context, userID, id string) error
	// ListDeliveries orders by creation, newest first
	ListDeliveries(ctx context.Context, userID string) ([]models.Delivery, error)
	ListShiftDeliveries(ctx context.Context, userID, shiftID string) ([]models.Delivery, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
	UpdateProfile(ctx context.Context, p *models.Profile) error

	SaveDeviceToken(ctx context.Context, t *models.DeviceToken) error
	ListDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error)
}

// Store is the full record store used by the services
type Store interface {
	ShiftStore
	RecordStore
	ReferenceStore
	DeliveryStore
	ProfileStore
	Close() error
}
