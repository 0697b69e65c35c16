package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motoboy-backend/internal/middleware"
	"motoboy-backend/internal/services"
	"motoboy-backend/internal/services/slip"
	"motoboy-backend/internal/store/memory"
)

const testSecret = "handlers-secret"

type testAPI struct {
	t      *testing.T
	router http.Handler
	token  string
}

func newTestAPI(t *testing.T, gatewayContent string) *testAPI {
	t.Helper()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": gatewayContent}},
			},
		})
	}))
	t.Cleanup(gateway.Close)

	s := memory.New()
	clock := services.LocalClock(time.UTC)
	shifts := services.NewShiftService(s, nil, clock)
	reference := services.NewReferenceService(s, nil, clock)
	t.Cleanup(reference.Close)
	reader := slip.NewReader(slip.Config{GatewayURL: gateway.URL, APIKey: "k"})

	router := NewRouter(Deps{
		JWTSecret:  testSecret,
		Shifts:     shifts,
		Records:    services.NewRecordService(s, shifts, nil, clock),
		Reference:  reference,
		Deliveries: services.NewDeliveryService(s, reference, shifts, nil, clock),
		Profiles:   services.NewProfileService(s, clock),
		Reports:    services.NewReportService(s, shifts, clock),
		Slips:      reader,
	})

	token, err := middleware.SignToken(testSecret, middleware.UserClaims{UserID: "rider-1", Email: "rider@example.com"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return &testAPI{t: t, router: router, token: token}
}

func (a *testAPI) do(method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestPreflightReturnsNoContent(t *testing.T) {
	api := newTestAPI(t, "")
	req := httptest.NewRequest(http.MethodOptions, "/functions/v1/ler-comanda", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("pre-flight body = %q", rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("missing Access-Control-Allow-Origin")
	}
}

func TestRequiresBearerToken(t *testing.T) {
	api := newTestAPI(t, "")
	api.token = ""
	rec, body := api.do(http.MethodGet, "/api/shifts/current", nil)
	if rec.Code != http.StatusUnauthorized || body["success"] != false {
		t.Fatalf("status = %d body = %v", rec.Code, body)
	}

	health := httptest.NewRecorder()
	api.router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
	if health.Code != http.StatusOK {
		t.Fatalf("health = %d", health.Code)
	}
}

func TestShiftEndpointsStatusCodes(t *testing.T) {
	api := newTestAPI(t, "")

	steps := []struct {
		method, path string
		body         interface{}
		want         int
	}{
		{http.MethodPost, "/api/shifts/end", nil, http.StatusConflict},
		{http.MethodPost, "/api/shifts/start", map[string]string{"label": "Noite"}, http.StatusCreated},
		{http.MethodPost, "/api/shifts/start", nil, http.StatusConflict},
		{http.MethodPost, "/api/earnings", map[string]interface{}{"amount": 25.5, "work_type": "App", "payment_method": "Pix"}, http.StatusCreated},
		{http.MethodPost, "/api/earnings", map[string]interface{}{"amount": -1, "work_type": "App", "payment_method": "Pix"}, http.StatusBadRequest},
		{http.MethodPost, "/api/expenses", map[string]interface{}{"amount": 10, "category": "Combustível", "description": "Gasolina"}, http.StatusCreated},
		{http.MethodPost, "/api/shifts/end", nil, http.StatusOK},
		{http.MethodGet, "/api/shifts/unknown", nil, http.StatusNotFound},
		{http.MethodDelete, "/api/earnings/unknown", nil, http.StatusNotFound},
		{http.MethodGet, "/api/reports?period=anual", nil, http.StatusBadRequest},
		{http.MethodGet, "/api/reports?period=mensal", nil, http.StatusOK},
		{http.MethodGet, "/api/dashboard", nil, http.StatusOK},
	}
	for _, s := range steps {
		rec, body := api.do(s.method, s.path, s.body)
		if rec.Code != s.want {
			t.Fatalf("%s %s = %d, want %d (%v)", s.method, s.path, rec.Code, s.want, body)
		}
	}

	_, body := api.do(http.MethodGet, "/api/shifts", nil)
	shifts, _ := body["data"].([]interface{})
	if len(shifts) != 1 {
		t.Fatalf("history = %v", body)
	}
	closed := shifts[0].(map[string]interface{})
	if closed["status"] != "closed" || closed["profit_total"] != 15.5 {
		t.Fatalf("closed shift = %v", closed)
	}
}

func TestLerComandaUsesStoredNeighborhoods(t *testing.T) {
	api := newTestAPI(t, `{"endereco":"Rua A, 1","bairro":"centro","referencia":null,"observacao":null,"confianca":"alta"}`)

	rec, _ := api.do(http.MethodPost, "/api/neighborhoods", map[string]interface{}{"name": "Centro", "fee": 12.5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create neighborhood = %d", rec.Code)
	}

	rec, body := api.do(http.MethodPost, "/functions/v1/ler-comanda", map[string]interface{}{"imageBase64": "data:image/jpeg;base64,AAAA"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %v", rec.Code, body)
	}
	if body["success"] != true || body["bairro"] != "Centro" || body["taxa"] != 12.5 {
		t.Fatalf("body = %v", body)
	}

	// An explicit table replaces the stored one
	rec, body = api.do(http.MethodPost, "/api/slips/read", map[string]interface{}{
		"imageBase64": "AAAA",
		"bairros":     []map[string]interface{}{{"nome": "CENTRO", "taxa": 9}},
	})
	if rec.Code != http.StatusOK || body["bairro"] != "CENTRO" || body["taxa"] != 9.0 {
		t.Fatalf("status = %d body = %v", rec.Code, body)
	}
}

func TestLerComandaFailures(t *testing.T) {
	api := newTestAPI(t, "não consegui ler")

	rec, body := api.do(http.MethodPost, "/functions/v1/ler-comanda", map[string]interface{}{"imageBase64": "AAAA", "bairros": []interface{}{}})
	if rec.Code != http.StatusBadRequest || body["raw"] != "não consegui ler" || body["error"] == nil {
		t.Fatalf("unreadable: status = %d body = %v", rec.Code, body)
	}

	rec, body = api.do(http.MethodPost, "/functions/v1/ler-comanda", map[string]interface{}{})
	if rec.Code != http.StatusBadRequest || body["error"] == nil {
		t.Fatalf("missing image: status = %d body = %v", rec.Code, body)
	}
	if _, ok := body["raw"]; ok {
		t.Fatal("raw must only accompany unreadable slips")
	}
}

func TestDeliveryFlow(t *testing.T) {
	api := newTestAPI(t, "")

	_, body := api.do(http.MethodPost, "/api/neighborhoods", map[string]interface{}{"name": "Jardim", "fee": 8})
	id := body["data"].(map[string]interface{})["id"].(string)

	rec, body := api.do(http.MethodPost, "/api/deliveries", map[string]interface{}{"address": "Rua B, 2", "neighborhood_id": id})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create delivery = %d %v", rec.Code, body)
	}
	rec, _ = api.do(http.MethodDelete, "/api/neighborhoods/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete neighborhood = %d", rec.Code)
	}

	_, body = api.do(http.MethodGet, "/api/deliveries", nil)
	list := body["data"].([]interface{})
	d := list[0].(map[string]interface{})
	if d["neighborhood_name"] != "Jardim" || d["fee"] != 8.0 {
		t.Fatalf("delivery = %v", d)
	}

	rec, _ = api.do(http.MethodPost, "/api/deliveries", map[string]interface{}{"address": "Rua C"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delivery without neighborhood = %d", rec.Code)
	}
}

func TestProfileEndpoints(t *testing.T) {
	api := newTestAPI(t, "")

	rec, body := api.do(http.MethodPatch, "/api/profile", map[string]interface{}{"monthly_goal": 3000, "city": "Campinas"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d %v", rec.Code, body)
	}
	_, body = api.do(http.MethodGet, "/api/auth/status", nil)
	data := body["data"].(map[string]interface{})
	profile := data["profile"].(map[string]interface{})
	if profile["monthly_goal"] != 3000.0 || profile["city"] != "Campinas" || profile["email"] != "rider@example.com" {
		t.Fatalf("profile = %v", profile)
	}

	rec, _ = api.do(http.MethodPost, "/api/devices", map[string]string{"token": "fcm-token", "device_type": "ios"})
	if rec.Code != http.StatusOK {
		t.Fatalf("register device = %d", rec.Code)
	}
}
