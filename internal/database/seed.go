package database

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// SeedReferenceData gives a fresh account a starter set of neighborhoods and
// establishments. Accounts that already have neighborhoods are left alone.
func SeedReferenceData(ctx context.Context, s store.ReferenceStore, userID string) error {
	existing, err := s.ListNeighborhoods(ctx, userID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("✓ Reference data already seeded, skipping...")
		return nil
	}

	log.Printf("🌱 Seeding reference data for user %s...", userID)
	now := time.Now().Unix()

	neighborhoods := []struct {
		name string
		fee  float64
	}{
		{"Centro", 7.00},
		{"Jardim América", 9.50},
		{"Vila Nova", 8.00},
		{"Boa Vista", 10.00},
		{"São José", 12.50},
	}
	for _, n := range neighborhoods {
		err := s.CreateNeighborhood(ctx, &models.Neighborhood{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      n.name,
			Fee:       n.fee,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		log.Printf("  ✓ Created neighborhood: %s (R$%.2f)", n.name, n.fee)
	}

	establishments := []struct {
		name string
		rate float64
	}{
		{"Marmitaria da Praça", 60},
		{"Pizzaria Bella", 80},
	}
	for _, e := range establishments {
		err := s.CreateEstablishment(ctx, &models.Establishment{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      e.name,
			DailyRate: e.rate,
			Active:    true,
			CreatedAt: now,
		})
		if err != nil {
			return err
		}
		log.Printf("  ✓ Created establishment: %s", e.name)
	}

	log.Println("✓ Successfully seeded reference data")
	return nil
}
