package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/services"
	"motoboy-backend/pkg/utils"
)

func ListDeliveries(svc *services.DeliveryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		list, err := svc.List(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to fetch deliveries")
			return
		}
		utils.RespondData(w, http.StatusOK, list)
	}
}

func CreateDelivery(svc *services.DeliveryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST /api/deliveries")
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		var req models.CreateDeliveryRequest
		if !decodeBody(w, r, &req) {
			return
		}
		d, err := svc.Add(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to create delivery")
			return
		}
		utils.RespondData(w, http.StatusCreated, d)
	}
}

func DeleteDelivery(svc *services.DeliveryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), userClaims.UserID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err, "Failed to delete delivery")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
