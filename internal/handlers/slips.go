package handlers

import (
	"errors"
	"log"
	"net/http"

	"motoboy-backend/internal/services"
	"motoboy-backend/internal/services/slip"
	"motoboy-backend/pkg/utils"
)

// ReadSlipRequest mirrors the body the app sends
type ReadSlipRequest struct {
	ImageBase64 string                 `json:"imageBase64"`
	Bairros     []slip.NeighborhoodFee `json:"bairros"`
}

type readSlipResponse struct {
	*slip.Result
	Success bool `json:"success"`
}

// ReadSlip extracts delivery details from a slip photo. When the body has no
// neighborhood table the rider's registered neighborhoods are used.
// Failures answer {error, raw?} instead of the usual envelope.
func ReadSlip(reader *slip.Reader, reference *services.ReferenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("📥 REQUEST: POST %s", r.URL.Path)
		userClaims, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req ReadSlipRequest
		if err := utils.DecodeJSON(r, &req); err != nil {
			utils.RespondJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "Corpo da requisição inválido"})
			return
		}

		if req.Bairros == nil && req.ImageBase64 != "" {
			registered, err := reference.ListNeighborhoods(r.Context(), userClaims.UserID)
			if err != nil {
				log.Printf("❌ Failed to load neighborhoods for slip: %v", err)
				utils.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "Erro ao carregar bairros"})
				return
			}
			for _, n := range registered {
				req.Bairros = append(req.Bairros, slip.NeighborhoodFee{Name: n.Name, Fee: n.Fee})
			}
		}

		result, err := reader.Read(r.Context(), slip.Request{ImageBase64: req.ImageBase64, Neighborhoods: req.Bairros})
		if err != nil {
			var se *slip.Error
			if !errors.As(err, &se) {
				log.Printf("❌ Slip reading failed: %v", err)
				utils.RespondJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "Erro desconhecido"})
				return
			}
			log.Printf("📤 RESPONSE: %d - %v", se.Status(), se)
			body := map[string]interface{}{"error": se.Message}
			if se.Kind == slip.KindUnreadable {
				body["raw"] = se.Raw
			}
			utils.RespondJSON(w, se.Status(), body)
			return
		}

		utils.RespondJSON(w, http.StatusOK, readSlipResponse{Result: result, Success: true})
	}
}
