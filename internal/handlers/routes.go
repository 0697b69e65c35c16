package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"motoboy-backend/internal/middleware"
	"motoboy-backend/internal/services"
	"motoboy-backend/internal/services/slip"
	"motoboy-backend/internal/websocket"
)

// Deps are the services the router dispatches to
type Deps struct {
	JWTSecret  string
	Hub        *websocket.Hub
	Shifts     *services.ShiftService
	Records    *services.RecordService
	Reference  *services.ReferenceService
	Deliveries *services.DeliveryService
	Profiles   *services.ProfileService
	Reports    *services.ReportService
	Slips      *slip.Reader
}

// preflight ends CORS pre-flight requests with an empty 204
func preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter wires every route of the API
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		ExposedHeaders:     []string{"Link"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true,
	}))
	r.Use(preflight)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WebSocket authenticates through the token query parameter
	if d.Hub != nil {
		r.Get("/ws", websocket.HandleWebSocket(d.Hub, d.JWTSecret))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(d.JWTSecret))

		// Slip ingestion, also on the path the app already calls
		r.Post("/functions/v1/ler-comanda", ReadSlip(d.Slips, d.Reference))

		r.Route("/api", func(r chi.Router) {
			r.Get("/auth/status", AuthStatus(d.Profiles))
			r.Get("/profile", GetProfile(d.Profiles))
			r.Patch("/profile", UpdateProfile(d.Profiles))
			r.Post("/devices", RegisterDevice(d.Profiles))

			r.Get("/dashboard", GetDashboard(d.Reports))
			r.Get("/reports", GetReport(d.Reports))

			r.Get("/shifts", GetShiftHistory(d.Shifts))
			r.Get("/shifts/current", GetCurrentShift(d.Shifts))
			r.Post("/shifts/start", StartShift(d.Shifts))
			r.Post("/shifts/end", EndShift(d.Shifts))
			r.Get("/shifts/{id}", GetShiftDetails(d.Shifts))

			r.Get("/earnings", ListEarnings(d.Records))
			r.Post("/earnings", CreateEarning(d.Records))
			r.Delete("/earnings/{id}", DeleteEarning(d.Records))

			r.Get("/expenses", ListExpenses(d.Records))
			r.Post("/expenses", CreateExpense(d.Records))
			r.Delete("/expenses/{id}", DeleteExpense(d.Records))

			r.Get("/neighborhoods", ListNeighborhoods(d.Reference))
			r.Post("/neighborhoods", CreateNeighborhood(d.Reference))
			r.Patch("/neighborhoods/{id}", UpdateNeighborhood(d.Reference))
			r.Delete("/neighborhoods/{id}", DeleteNeighborhood(d.Reference))

			r.Get("/establishments", ListEstablishments(d.Reference))
			r.Post("/establishments", CreateEstablishment(d.Reference))
			r.Patch("/establishments/{id}", UpdateEstablishment(d.Reference))
			r.Delete("/establishments/{id}", DeleteEstablishment(d.Reference))

			r.Get("/deliveries", ListDeliveries(d.Deliveries))
			r.Post("/deliveries", CreateDelivery(d.Deliveries))
			r.Delete("/deliveries/{id}", DeleteDelivery(d.Deliveries))

			r.Post("/slips/read", ReadSlip(d.Slips, d.Reference))
		})
	})

	return r
}
