package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/careercompass/backend/internal/models"
)

// Stores are the slices of the persistence gateway each handler needs.
// services.MongoStore satisfies all of them.

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type ProfileStore interface {
	CreateProfile(ctx context.Context, userID string) (*models.Profile, error)
	FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID string, set bson.M) (bool, error)
}

type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, userID, resultJSON string) (*models.CareerAnalysis, error)
	FindAnalysesByUserID(ctx context.Context, userID string) ([]models.CareerAnalysis, error)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.NewErrorResponse(message))
}
