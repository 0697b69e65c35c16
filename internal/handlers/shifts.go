package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/services"
	"motoboy-backend/pkg/utils"
)

// GetCurrentShift returns the open shift and its running totals, or a null shift
func GetCurrentShift(svc *services.ShiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		summary, err := svc.Current(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to load current shift")
			return
		}
		utils.RespondData(w, http.StatusOK, summary)
	}
}

// StartShift opens a shift; the body is optional
func StartShift(svc *services.ShiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST /api/shifts/start")

		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.StartShiftRequest
		if err := utils.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		shift, err := svc.Start(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to start shift")
			return
		}

		log.Printf("📤 RESPONSE: 201 - shift %s started", shift.ID)
		utils.RespondData(w, http.StatusCreated, shift)
	}
}

func EndShift(svc *services.ShiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST /api/shifts/end")

		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		shift, err := svc.End(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to end shift")
			return
		}

		log.Printf("📤 RESPONSE: 200 - shift %s closed (profit %.2f)", shift.ID, shift.ProfitTotal)
		utils.RespondData(w, http.StatusOK, shift)
	}
}

func GetShiftHistory(svc *services.ShiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		shifts, err := svc.History(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to fetch shifts")
			return
		}
		utils.RespondData(w, http.StatusOK, shifts)
	}
}

func GetShiftDetails(svc *services.ShiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		details, err := svc.Get(r.Context(), userClaims.UserID, chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, err, "Failed to fetch shift")
			return
		}
		utils.RespondData(w, http.StatusOK, details)
	}
}
