package handlers

import (
	"errors"
	"log"
	"net/http"

	"motoboy-backend/internal/middleware"
	"motoboy-backend/internal/services"
	"motoboy-backend/internal/store"
	"motoboy-backend/pkg/utils"
)

// requireUser writes 401 and returns false when the request has no claims
func requireUser(w http.ResponseWriter, r *http.Request) (middleware.UserClaims, bool) {
	userClaims, ok := middleware.GetUserFromContext(r)
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return middleware.UserClaims{}, false
	}
	return userClaims, true
}

func identity(c middleware.UserClaims) services.Identity {
	return services.Identity{UserID: c.UserID, Email: c.Email, Name: c.Name}
}

// respondServiceError maps service and store errors to status codes
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		log.Printf("📤 RESPONSE: 400 - %v", err)
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		log.Printf("📤 RESPONSE: 404 - %v", err)
		utils.RespondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrShiftAlreadyOpen):
		log.Printf("📤 RESPONSE: 409 - %v", err)
		utils.RespondError(w, http.StatusConflict, "A shift is already open")
	case errors.Is(err, services.ErrNoOpenShift):
		log.Printf("📤 RESPONSE: 409 - %v", err)
		utils.RespondError(w, http.StatusConflict, "No open shift")
	case errors.Is(err, store.ErrConflict):
		log.Printf("📤 RESPONSE: 409 - %v", err)
		utils.RespondError(w, http.StatusConflict, "Already exists")
	default:
		log.Printf("❌ %s: %v", fallback, err)
		utils.RespondError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.DecodeJSON(r, dst); err != nil {
		log.Printf("❌ Invalid request body: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
