package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// DeliveryService records drop-offs. The neighborhood name and fee are
// copied onto the delivery, so later reference edits never change it.
type DeliveryService struct {
	store     store.Store
	reference *ReferenceService
	shifts    *ShiftService
	events    Events
	now       Clock
}

func NewDeliveryService(s store.Store, reference *ReferenceService, shifts *ShiftService, events Events, now Clock) *DeliveryService {
	if events == nil {
		events = NopEvents{}
	}
	return &DeliveryService{store: s, reference: reference, shifts: shifts, events: events, now: now.orDefault()}
}

func (s *DeliveryService) Add(ctx context.Context, userID string, req models.CreateDeliveryRequest) (*models.Delivery, error) {
	address, err := validName("address", req.Address)
	if err != nil {
		return nil, err
	}
	neighborhoodID := trimmedOrNil(req.NeighborhoodID)
	neighborhoodName := trimmedOrNil(req.NeighborhoodName)
	if neighborhoodID == nil && neighborhoodName == nil {
		return nil, validationError("neighborhood is required")
	}
	if req.Fee != nil {
		if err := validAmount("fee", *req.Fee, true); err != nil {
			return nil, err
		}
	}

	d := &models.Delivery{
		ID:               uuid.New().String(),
		UserID:           userID,
		Address:          address,
		NeighborhoodName: neighborhoodName,
		Reference:        trimmedOrNil(req.Reference),
		Note:             trimmedOrNil(req.Note),
		CreatedAt:        s.now().Unix(),
	}

	if neighborhoodID != nil {
		n, err := s.reference.GetNeighborhood(ctx, userID, *neighborhoodID)
		if errors.Is(err, store.ErrNotFound) {
			return nil, validationError("neighborhood %s does not exist", *neighborhoodID)
		}
		if err != nil {
			return nil, err
		}
		name, fee := n.Name, n.Fee
		d.NeighborhoodID = &n.ID
		d.NeighborhoodName = &name
		d.Fee = &fee
	}
	if req.Fee != nil {
		fee := *req.Fee
		d.Fee = &fee
	}

	if id := trimmedOrNil(req.EstablishmentID); id != nil {
		est, err := s.store.GetEstablishment(ctx, userID, *id)
		if errors.Is(err, store.ErrNotFound) {
			return nil, validationError("establishment %s does not exist", *id)
		}
		if err != nil {
			return nil, fmt.Errorf("load establishment: %w", err)
		}
		d.EstablishmentID = &est.ID
	}

	if d.ShiftID, err = openShiftID(ctx, s.store, userID); err != nil {
		return nil, err
	}

	if err := s.store.CreateDelivery(ctx, d); err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	log.Printf("✅ Delivery %s recorded for user %s", d.ID, userID)
	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "delivery", Action: "created", ID: d.ID, Record: d})
	publishSummary(ctx, s.shifts, s.events, userID)
	return d, nil
}

func (s *DeliveryService) List(ctx context.Context, userID string) ([]models.Delivery, error) {
	deliveries, err := s.store.ListDeliveries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	if deliveries == nil {
		deliveries = []models.Delivery{}
	}
	return deliveries, nil
}

func (s *DeliveryService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteDelivery(ctx, userID, id); err != nil {
		return fmt.Errorf("delete delivery %s: %w", id, err)
	}
	s.events.RecordChanged(ctx, userID, RecordChange{Kind: "delivery", Action: "deleted", ID: id})
	publishSummary(ctx, s.shifts, s.events, userID)
	return nil
}
