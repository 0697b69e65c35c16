package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"motoboy-backend/internal/cache"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// ReferenceService manages the rider's neighborhoods and establishments.
// Each user's collections are cached and only mutated after the store has
// accepted the write.
type ReferenceService struct {
	store          store.ReferenceStore
	events         Events
	now            Clock
	mu             sync.Mutex
	neighborhoods  *cache.Cache[[]models.Neighborhood]
	establishments *cache.Cache[[]models.Establishment]
}

func NewReferenceService(s store.ReferenceStore, events Events, now Clock) *ReferenceService {
	if events == nil {
		events = NopEvents{}
	}
	return &ReferenceService{
		store:          s,
		events:         events,
		now:            now.orDefault(),
		neighborhoods:  cache.New[[]models.Neighborhood]("neighborhoods", 1000, 0),
		establishments: cache.New[[]models.Establishment]("establishments", 1000, 0),
	}
}

// Close releases the caches
func (s *ReferenceService) Close() {
	s.neighborhoods.Close()
	s.establishments.Close()
}

// Invalidate drops the user's cached collections so the next read hits the store
func (s *ReferenceService) Invalidate(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.neighborhoods.Delete(userID)
	s.establishments.Delete(userID)
}

// CacheStats exposes hit/miss counters for diagnostics
func (s *ReferenceService) CacheStats() map[string]interface{} {
	return map[string]interface{}{
		"neighborhoods":  s.neighborhoods.GetStats(),
		"establishments": s.establishments.GetStats(),
	}
}

// ==================== NEIGHBORHOODS ====================

func (s *ReferenceService) ListNeighborhoods(ctx context.Context, userID string) ([]models.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadNeighborhoods(ctx, userID)
}

// loadNeighborhoods returns a private copy of the cached collection. Caller holds mu.
func (s *ReferenceService) loadNeighborhoods(ctx context.Context, userID string) ([]models.Neighborhood, error) {
	if cached, ok := s.neighborhoods.Get(userID); ok {
		return append([]models.Neighborhood{}, cached...), nil
	}
	list, err := s.store.ListNeighborhoods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list neighborhoods: %w", err)
	}
	if list == nil {
		list = []models.Neighborhood{}
	}
	models.SortNeighborhoods(list)
	s.neighborhoods.Set(userID, list)
	return append([]models.Neighborhood{}, list...), nil
}

func (s *ReferenceService) AddNeighborhood(ctx context.Context, userID string, req models.NeighborhoodRequest) (*models.Neighborhood, error) {
	name, err := validName("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := validAmount("fee", req.Fee, true); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.loadNeighborhoods(ctx, userID)
	if err != nil {
		return nil, err
	}

	n := models.Neighborhood{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Fee:       req.Fee,
		CreatedAt: s.now().Unix(),
	}
	if err := s.store.CreateNeighborhood(ctx, &n); err != nil {
		return nil, fmt.Errorf("create neighborhood: %w", err)
	}

	list = append(list, n)
	models.SortNeighborhoods(list)
	s.neighborhoods.Set(userID, list)

	log.Printf("✅ Neighborhood %q added (fee %.2f)", n.Name, n.Fee)
	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "neighborhood", Action: "created", ID: n.ID, Record: n})
	return &n, nil
}

func (s *ReferenceService) UpdateNeighborhood(ctx context.Context, userID, id string, req models.NeighborhoodRequest) (*models.Neighborhood, error) {
	name, err := validName("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := validAmount("fee", req.Fee, true); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.loadNeighborhoods(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("neighborhood %s: %w", id, store.ErrNotFound)
	}

	updated := list[idx]
	updated.Name = name
	updated.Fee = req.Fee
	if err := s.store.UpdateNeighborhood(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update neighborhood: %w", err)
	}

	list[idx] = updated
	models.SortNeighborhoods(list)
	s.neighborhoods.Set(userID, list)

	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "neighborhood", Action: "updated", ID: id, Record: updated})
	return &updated, nil
}

// DeleteNeighborhood is unconditional: deleting an unknown id succeeds.
// Deliveries keep the name and fee they copied at creation.
func (s *ReferenceService) DeleteNeighborhood(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.loadNeighborhoods(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteNeighborhood(ctx, userID, id); err != nil {
		return fmt.Errorf("delete neighborhood: %w", err)
	}

	kept := list[:0]
	for _, n := range list {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.neighborhoods.Set(userID, kept)

	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "neighborhood", Action: "deleted", ID: id})
	return nil
}

// GetNeighborhood looks the id up in the user's collection
func (s *ReferenceService) GetNeighborhood(ctx context.Context, userID, id string) (*models.Neighborhood, error) {
	list, err := s.ListNeighborhoods(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("neighborhood %s: %w", id, store.ErrNotFound)
}

// ==================== ESTABLISHMENTS ====================

func (s *ReferenceService) ListEstablishments(ctx context.Context, userID string) ([]models.Establishment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadEstablishments(ctx, userID)
}

func (s *ReferenceService) loadEstablishments(ctx context.Context, userID string) ([]models.Establishment, error) {
	if cached, ok := s.establishments.Get(userID); ok {
		return append([]models.Establishment{}, cached...), nil
	}
	list, err := s.store.ListEstablishments(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list establishments: %w", err)
	}
	if list == nil {
		list = []models.Establishment{}
	}
	models.SortEstablishments(list)
	s.establishments.Set(userID, list)
	return append([]models.Establishment{}, list...), nil
}

func (s *ReferenceService) AddEstablishment(ctx context.Context, userID string, req models.EstablishmentRequest) (*models.Establishment, error) {
	name, err := validName("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := validAmount("daily_rate", req.DailyRate, true); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.loadEstablishments(ctx, userID)
	if err != nil {
		return nil, err
	}

	e := models.Establishment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		DailyRate: req.DailyRate,
		Active:    true,
		CreatedAt: s.now().Unix(),
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	if err := s.store.CreateEstablishment(ctx, &e); err != nil {
		return nil, fmt.Errorf("create establishment: %w", err)
	}

	list = append(list, e)
	models.SortEstablishments(list)
	s.establishments.Set(userID, list)

	log.Printf("✅ Establishment %q added (daily rate %.2f)", e.Name, e.DailyRate)
	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "establishment", Action: "created", ID: e.ID, Record: e})
	return &e, nil
}

// UpdateEstablishment replaces name and rate. Active is only changed when given.
func (s *ReferenceService) UpdateEstablishment(ctx context.Context, userID, id string, req models.EstablishmentRequest) (*models.Establishment, error) {
	name, err := validName("name", req.Name)
	if err != nil {
		return nil, err
	}
	if err := validAmount("daily_rate", req.DailyRate, true); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.loadEstablishments(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range list {
		if list[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("establishment %s: %w", id, store.ErrNotFound)
	}

	updated := list[idx]
	updated.Name = name
	updated.DailyRate = req.DailyRate
	if req.Active != nil {
		updated.Active = *req.Active
	}
	if err := s.store.UpdateEstablishment(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update establishment: %w", err)
	}

	list[idx] = updated
	models.SortEstablishments(list)
	s.establishments.Set(userID, list)

	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "establishment", Action: "updated", ID: id, Record: updated})
	return &updated, nil
}

func (s *ReferenceService) DeleteEstablishment(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.loadEstablishments(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEstablishment(ctx, userID, id); err != nil {
		return fmt.Errorf("delete establishment: %w", err)
	}

	kept := list[:0]
	for _, e := range list {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.establishments.Set(userID, kept)

	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "establishment", Action: "deleted", ID: id})
	return nil
}
