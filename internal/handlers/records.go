package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"motoboy-backend/internal/models"
	"motoboy-backend/internal/services"
	"motoboy-backend/pkg/utils"
)

// ==================== EARNINGS ====================

func ListEarnings(svc *services.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		earnings, err := svc.ListEarnings(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to fetch earnings")
			return
		}
		utils.RespondData(w, http.StatusOK, earnings)
	}
}

func CreateEarning(svc *services.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST /api/earnings")
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.CreateEarningRequest
		if !decodeBody(w, r, &req) {
			return
		}

		earning, err := svc.AddEarning(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to create earning")
			return
		}
		utils.RespondData(w, http.StatusCreated, earning)
	}
}

func DeleteEarning(svc *services.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteEarning(r.Context(), userClaims.UserID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err, "Failed to delete earning")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}

// ==================== EXPENSES ====================

func ListExpenses(svc *services.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		expenses, err := svc.ListExpenses(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to fetch expenses")
			return
		}
		utils.RespondData(w, http.StatusOK, expenses)
	}
}

func CreateExpense(svc *services.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST /api/expenses")
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req models.CreateExpenseRequest
		if !decodeBody(w, r, &req) {
			return
		}

		expense, err := svc.AddExpense(r.Context(), userClaims.UserID, req)
		if err != nil {
			respondServiceError(w, err, "Failed to create expense")
			return
		}
		utils.RespondData(w, http.StatusCreated, expense)
	}
}

func DeleteExpense(svc *services.RecordService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteExpense(r.Context(), userClaims.UserID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, err, "Failed to delete expense")
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}
}
