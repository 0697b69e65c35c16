// Package memory is a process-local record store. Collections keep
// insertion order so shift totals are summed in the order records arrived.
package memory

import (
	"context"
	"sort"
	"sync"

	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

type Store struct {
	mu             sync.Mutex
	shifts         []models.Shift
	earnings       []models.Earning
	expenses       []models.Expense
	neighborhoods  []models.Neighborhood
	establishments []models.Establishment
	deliveries     []models.Delivery
	profiles       map[string]models.Profile
	tokens         []models.DeviceToken
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{profiles: map[string]models.Profile{}}
}

func (s *Store) Close() error { return nil }

// Shifts

func (s *Store) CreateShift(_ context.Context, sh *models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shifts {
		if s.shifts[i].ID == sh.ID {
			return store.ErrConflict
		}
		if sh.Status == models.ShiftStatusOpen && s.shifts[i].UserID == sh.UserID && s.shifts[i].Status == models.ShiftStatusOpen {
			return store.ErrConflict
		}
	}
	s.shifts = append(s.shifts, *sh)
	return nil
}

func (s *Store) OpenShift(_ context.Context, userID string) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shifts {
		if s.shifts[i].UserID == userID && s.shifts[i].Status == models.ShiftStatusOpen {
			sh := s.shifts[i]
			return &sh, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetShift(_ context.Context, userID, id string) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shifts {
		if s.shifts[i].UserID == userID && s.shifts[i].ID == id {
			sh := s.shifts[i]
			return &sh, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListShifts(_ context.Context, userID string) ([]models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Shift{}
	for _, sh := range s.shifts {
		if sh.UserID == userID {
			out = append(out, sh)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime > out[j].StartTime })
	return out, nil
}

func (s *Store) CloseShift(_ context.Context, sh *models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.shifts {
		cur := &s.shifts[i]
		if cur.ID == sh.ID && cur.UserID == sh.UserID && cur.Status == models.ShiftStatusOpen {
			cur.Status = sh.Status
			cur.EndTime = sh.EndTime
			cur.EarningsTotal = sh.EarningsTotal
			cur.ExpensesTotal = sh.ExpensesTotal
			cur.ProfitTotal = sh.ProfitTotal
			return nil
		}
	}
	return store.ErrNotFound
}

// Earnings and expenses

func (s *Store) CreateEarning(_ context.Context, e *models.Earning) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earnings = append(s.earnings, *e)
	return nil
}

func (s *Store) DeleteEarning(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.earnings {
		if e.UserID == userID && e.ID == id {
			s.earnings = append(s.earnings[:i], s.earnings[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListEarnings(_ context.Context, userID string) ([]models.Earning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Earning{}
	for _, e := range s.earnings {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) ListShiftEarnings(_ context.Context, userID, shiftID string) ([]models.Earning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Earning{}
	for _, e := range s.earnings {
		if e.UserID == userID && e.ShiftID != nil && *e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Store) CreateExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.UserID == userID && e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListExpenses(_ context.Context, userID string) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (s *Store) ListShiftExpenses(_ context.Context, userID, shiftID string) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID && e.ShiftID != nil && *e.ShiftID == shiftID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Reference data

func (s *Store) CreateNeighborhood(_ context.Context, n *models.Neighborhood) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.neighborhoods = append(s.neighborhoods, *n)
	return nil
}

func (s *Store) UpdateNeighborhood(_ context.Context, n *models.Neighborhood) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.neighborhoods {
		cur := &s.neighborhoods[i]
		if cur.UserID == n.UserID && cur.ID == n.ID {
			cur.Name = n.Name
			cur.Fee = n.Fee
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteNeighborhood(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.neighborhoods {
		if n.UserID == userID && n.ID == id {
			s.neighborhoods = append(s.neighborhoods[:i], s.neighborhoods[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetNeighborhood(_ context.Context, userID, id string) (*models.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.neighborhoods {
		if n.UserID == userID && n.ID == id {
			return &n, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListNeighborhoods(_ context.Context, userID string) ([]models.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Neighborhood{}
	for _, n := range s.neighborhoods {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	models.SortNeighborhoods(out)
	return out, nil
}

func (s *Store) CreateEstablishment(_ context.Context, e *models.Establishment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.establishments = append(s.establishments, *e)
	return nil
}

func (s *Store) UpdateEstablishment(_ context.Context, e *models.Establishment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.establishments {
		cur := &s.establishments[i]
		if cur.UserID == e.UserID && cur.ID == e.ID {
			cur.Name = e.Name
			cur.DailyRate = e.DailyRate
			cur.Active = e.Active
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteEstablishment(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.establishments {
		if e.UserID == userID && e.ID == id {
			s.establishments = append(s.establishments[:i], s.establishments[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) GetEstablishment(_ context.Context, userID, id string) (*models.Establishment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.establishments {
		if e.UserID == userID && e.ID == id {
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListEstablishments(_ context.Context, userID string) ([]models.Establishment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Establishment{}
	for _, e := range s.establishments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	models.SortEstablishments(out)
	return out, nil
}

// Deliveries

func (s *Store) CreateDelivery(_ context.Context, d *models.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, *d)
	return nil
}

func (s *Store) DeleteDelivery(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.deliveries {
		if d.UserID == userID && d.ID == id {
			s.deliveries = append(s.deliveries[:i], s.deliveries[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListDeliveries(_ context.Context, userID string) ([]models.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Delivery{}
	for i := len(s.deliveries) - 1; i >= 0; i-- {
		if s.deliveries[i].UserID == userID {
			out = append(out, s.deliveries[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (s *Store) ListShiftDeliveries(_ context.Context, userID, shiftID string) ([]models.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Delivery{}
	for _, d := range s.deliveries {
		if d.UserID == userID && d.ShiftID != nil && *d.ShiftID == shiftID {
			out = append(out, d)
		}
	}
	return out, nil
}

// Profiles and device tokens

func (s *Store) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.UserID]; ok {
		return store.ErrConflict
	}
	s.profiles[p.UserID] = *p
	return nil
}

func (s *Store) UpdateProfile(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.UserID]; !ok {
		return store.ErrNotFound
	}
	s.profiles[p.UserID] = *p
	return nil
}

func (s *Store) SaveDeviceToken(_ context.Context, t *models.DeviceToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tokens {
		if s.tokens[i].Token == t.Token {
			s.tokens[i].UserID = t.UserID
			s.tokens[i].DeviceType = t.DeviceType
			s.tokens[i].UpdatedAt = t.UpdatedAt
			return nil
		}
	}
	s.tokens = append(s.tokens, *t)
	return nil
}

func (s *Store) ListDeviceTokens(_ context.Context, userID string) ([]models.DeviceToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.DeviceToken{}
	for _, t := range s.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
