package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"motoboy-backend/pkg/utils"
)

type contextKey string

const UserContextKey contextKey = "user"

type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

var ErrInvalidToken = errors.New("invalid token")

// ParseToken validates an HS256 bearer token and extracts the caller. The
// subject is read from "sub" (hosted auth provider) or "user_id".
func ParseToken(tokenString, secret string) (UserClaims, error) {
	if secret == "" {
		return UserClaims{}, fmt.Errorf("%w: signing secret not configured", ErrInvalidToken)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return UserClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return UserClaims{}, fmt.Errorf("%w: unexpected claims type %T", ErrInvalidToken, token.Claims)
	}

	user := UserClaims{
		UserID: stringClaim(claims, "sub"),
		Email:  stringClaim(claims, "email"),
		Name:   stringClaim(claims, "name"),
		Role:   stringClaim(claims, "role"),
	}
	if user.UserID == "" {
		user.UserID = stringClaim(claims, "user_id")
	}
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok && user.Name == "" {
		for _, key := range []string{"nome", "name", "full_name"} {
			if v, ok := meta[key].(string); ok && v != "" {
				user.Name = v
				break
			}
		}
	}
	if user.UserID == "" {
		return UserClaims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return user, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

// SignToken issues a token in the same shape ParseToken expects
func SignToken(secret string, user UserClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Auth validates the bearer token and adds the user claims to the context
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("❌ No authorization header: %s %s", r.Method, r.URL.Path)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("❌ Invalid authorization header format (parts: %d)", len(parts))
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userClaims, err := ParseToken(parts[1], secret)
			if err != nil {
				log.Printf("❌ Invalid token: %v", err)
				utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts user claims from request context
func GetUserFromContext(r *http.Request) (UserClaims, bool) {
	userClaims, ok := r.Context().Value(UserContextKey).(UserClaims)
	return userClaims, ok
}

// WithUser returns a copy of ctx carrying the user claims
func WithUser(ctx context.Context, user UserClaims) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}
