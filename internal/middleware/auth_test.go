package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestParseTokenAcceptsSubAndUserID(t *testing.T) {
	bySub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":           "user-1",
		"email":         "rider@example.com",
		"user_metadata": map[string]interface{}{"nome": "Carlos"},
	}).SignedString([]byte(testSecret))

	byUserID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-2",
		"email":   "other@example.com",
		"role":    "driver",
	}).SignedString([]byte(testSecret))

	got, err := ParseToken(bySub, testSecret)
	if err != nil || got.UserID != "user-1" || got.Name != "Carlos" {
		t.Fatalf("sub token: %+v err=%v", got, err)
	}
	got, err = ParseToken(byUserID, testSecret)
	if err != nil || got.UserID != "user-2" || got.Role != "driver" {
		t.Fatalf("user_id token: %+v err=%v", got, err)
	}
}

func TestParseTokenRejections(t *testing.T) {
	wrongKey, _ := SignToken("other-secret", UserClaims{UserID: "u"}, time.Hour)
	expired, _ := SignToken(testSecret, UserClaims{UserID: "u"}, -time.Hour)
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x"}).SignedString([]byte(testSecret))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong key", wrongKey, testSecret},
		{"expired", expired, testSecret},
		{"no subject", noSubject, testSecret},
		{"garbage", "not-a-jwt", testSecret},
		{"no secret", wrongKey, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.secret); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	var seen UserClaims
	handler := Auth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserFromContext(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := SignToken(testSecret, UserClaims{UserID: "user-1", Email: "a@b.c"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/shifts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
	if seen.UserID != "user-1" || seen.Email != "a@b.c" {
		t.Fatalf("claims not propagated: %+v", seen)
	}
}
