package handlers

import (
	"net/http"

	"motoboy-backend/internal/reports"
	"motoboy-backend/internal/services"
	"motoboy-backend/pkg/utils"
)

func GetDashboard(svc *services.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}
		dash, err := svc.Dashboard(r.Context(), userClaims.UserID)
		if err != nil {
			respondServiceError(w, err, "Failed to build dashboard")
			return
		}
		utils.RespondData(w, http.StatusOK, dash)
	}
}

// GetReport builds the period report; period defaults to weekly
func GetReport(svc *services.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		period := r.URL.Query().Get("period")
		if period == "" {
			period = string(reports.PeriodWeekly)
		}
		kind, err := reports.ParsePeriod(period)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "period must be daily, weekly or monthly")
			return
		}

		report, err := svc.Report(r.Context(), userClaims.UserID, kind)
		if err != nil {
			respondServiceError(w, err, "Failed to build report")
			return
		}
		utils.RespondData(w, http.StatusOK, report)
	}
}
