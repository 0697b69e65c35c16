package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/store"
)

// Identity is what the auth token tells us about the caller
type Identity struct {
	UserID string
	Email  string
	Name   string
}

type ProfileService struct {
	store    store.ProfileStore
	now      Clock
	onCreate func(ctx context.Context, userID string) error
}

func NewProfileService(s store.ProfileStore, now Clock) *ProfileService {
	return &ProfileService{store: s, now: now.orDefault()}
}

// OnCreate registers fn to run once a profile has been created. Its failure
// is logged; the profile is still returned.
func (s *ProfileService) OnCreate(fn func(ctx context.Context, userID string) error) *ProfileService {
	s.onCreate = fn
	return s
}

// Get returns the caller's profile, creating it from the token on first access
func (s *ProfileService) Get(ctx context.Context, id Identity) (*models.Profile, error) {
	profile, err := s.store.GetProfile(ctx, id.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := s.now().Unix()
	name := strings.TrimSpace(id.Name)
	if name == "" {
		name, _, _ = strings.Cut(id.Email, "@")
	}
	profile = &models.Profile{
		UserID:    id.UserID,
		Name:      name,
		Email:     id.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// another request created it first
			return s.store.GetProfile(ctx, id.UserID)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	log.Printf("🌱 Created profile for %s (%s)", profile.Email, profile.UserID)

	if s.onCreate != nil {
		if err := s.onCreate(ctx, profile.UserID); err != nil {
			log.Printf("⚠️  Profile onboarding failed for %s: %v", profile.UserID, err)
		}
	}
	return profile, nil
}

// Update applies the fields present in req
func (s *ProfileService) Update(ctx context.Context, id Identity, req models.UpdateProfileRequest) (*models.Profile, error) {
	if req.Name != nil {
		name, err := validName("name", *req.Name)
		if err != nil {
			return nil, err
		}
		req.Name = &name
	}
	if req.MonthlyGoal != nil {
		if err := validAmount("monthly_goal", *req.MonthlyGoal, true); err != nil {
			return nil, err
		}
	}

	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *profile
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Whatsapp != nil {
		updated.Whatsapp = trimmedOrNil(req.Whatsapp)
	}
	if req.City != nil {
		updated.City = trimmedOrNil(req.City)
	}
	if req.MonthlyGoal != nil {
		goal := *req.MonthlyGoal
		if goal == 0 {
			updated.MonthlyGoal = nil
		} else {
			updated.MonthlyGoal = &goal
		}
	}
	updated.UpdatedAt = s.now().Unix()

	if err := s.store.UpdateProfile(ctx, &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &updated, nil
}

// RegisterDevice stores an FCM token for push notifications
func (s *ProfileService) RegisterDevice(ctx context.Context, userID string, req models.RegisterDeviceRequest) (*models.DeviceToken, error) {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return nil, validationError("token is required")
	}
	deviceType := strings.ToLower(strings.TrimSpace(req.DeviceType))
	if deviceType != "ios" && deviceType != "android" {
		return nil, validationError("device_type must be 'ios' or 'android'")
	}

	now := s.now().Unix()
	t := &models.DeviceToken{
		ID:         uuid.New().String(),
		UserID:     userID,
		Token:      token,
		DeviceType: deviceType,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.SaveDeviceToken(ctx, t); err != nil {
		return nil, fmt.Errorf("save device token: %w", err)
	}
	log.Printf("✅ FCM token registered for user %s (%s)", userID, deviceType)
	return t, nil
}
