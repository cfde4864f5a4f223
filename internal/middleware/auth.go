package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/careercompass/backend/internal/auth"
	"github.com/careercompass/backend/internal/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserEmailKey contextKey = "userEmail"
)

// UserFinder resolves a token subject to a stored user record.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// BearerAuth validates the bearer token, resolves its subject email to a
// user, and puts both the user ID and email into the request context.
func BearerAuth(tokens *auth.Tokens, users UserFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Authorization header required"))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid authorization header format"))
				return
			}

			email, err := tokens.Resolve(parts[1])
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
				return
			}

			user, err := users.FindUserByEmail(r.Context(), email)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.UserID)
			ctx = context.WithValue(ctx, UserEmailKey, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user's ID from context.
func GetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}

// GetUserEmail extracts the authenticated user's email from context.
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(UserEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
