package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/services"
	"motoboy-backend/pkg/utils"
)

// ==================== NEIGHBORHOODS ====================

func ListNeighborhoods(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		list, err := svc.ListNeighborhoods(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to fetch neighborhoods")
			return
		}
		utils.RespondData(w, http.StatusOK, list)
	}
}

func CreateNeighborhood(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.NeighborhoodRequest
		if !decodeBody(w, r, &req) {
			return
		}
		n, err := svc.AddNeighborhood(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to create neighborhood")
			return
		}
		utils.RespondData(w, http.StatusCreated, n)
	}
}

func UpdateNeighborhood(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.NeighborhoodRequest
		if !decodeBody(w, r, &req) {
			return
		}
		n, err := svc.UpdateNeighborhood(r.Context(), userClaims.UserID, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, err, "Failed to update neighborhood")
			return
		}
		utils.RespondData(w, http.StatusOK, n)
	}
}

func DeleteNeighborhood(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteNeighborhood(r.Context(), userClaims.UserID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err, "Failed to delete neighborhood")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// ==================== ESTABLISHMENTS ====================

func ListEstablishments(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		list, err := svc.ListEstablishments(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to fetch establishments")
			return
		}
		utils.RespondData(w, http.StatusOK, list)
	}
}

func CreateEstablishment(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.EstablishmentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, err := svc.AddEstablishment(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to create establishment")
			return
		}
		utils.RespondData(w, http.StatusCreated, e)
	}
}

func UpdateEstablishment(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.EstablishmentRequest
		if !decodeBody(w, r, &req) {
			return
		}
		e, err := svc.UpdateEstablishment(r.Context(), userClaims.UserID, chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, err, "Failed to update establishment")
			return
		}
		utils.RespondData(w, http.StatusOK, e)
	}
}

func DeleteEstablishment(svc *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteEstablishment(r.Context(), userClaims.UserID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err, "Failed to delete establishment")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
