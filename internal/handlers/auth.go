package handlers

import (
	"log"
	"net/http"

	"motoboy-backend/internal/models"
	"motoboy-backend/internal/services"
	"motoboy-backend/pkg/utils"
)

// AuthStatus echoes the verified claims together with the rider's profile
func AuthStatus(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		profile, err := svc.Get(r.Context(), identity(userClaims))
		if err != nil {
			respondServiceError(w, err, "Failed to load profile")
			return
		}
		utils.RespondData(w, http.StatusOK, map[string]interface{}{
			"user":    userClaims,
			"profile": profile,
		})
	}
}

func GetProfile(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		profile, err := svc.Get(r.Context(), identity(userClaims))
		if err != nil {
			respondServiceError(w, err, "Failed to load profile")
			return
		}
		utils.RespondData(w, http.StatusOK, profile)
	}
}

func UpdateProfile(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.UpdateProfileRequest
		if !decodeBody(w, r, &req) {
			return
		}
		profile, err := svc.Update(r.Context(), identity(userClaims), req)
		if err != nil {
			respondServiceError(w, err, "Failed to update profile")
			return
		}
		utils.RespondData(w, http.StatusOK, profile)
	}
}

// RegisterDevice stores the FCM token of the rider's phone
func RegisterDevice(svc *services.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST /api/devices")
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.RegisterDeviceRequest
		if !decodeBody(w, r, &req) {
			return
		}
		token, err := svc.RegisterDevice(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to register device")
			return
		}
		utils.RespondData(w, http.StatusOK, token)
	}
}
