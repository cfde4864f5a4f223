package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careercompass/backend/internal/models"
)

// CreateProfile inserts an empty profile for the user. If one already exists
// (unique user_id index), the existing profile is returned instead.
func (s *MongoStore) CreateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	prof := &models.Profile{
		ProfileID: uuid.New().String(),
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := s.profilesCol.InsertOne(ctx, prof); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return s.FindProfileByUserID(ctx, userID)
		}
		return nil, err
	}
	return prof, nil
}

func (s *MongoStore) FindProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var prof models.Profile
	if err := s.profilesCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prof); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &prof, nil
}

// GetOrCreateProfile returns the user's profile, lazily creating an empty one.
func (s *MongoStore) GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	prof, err := s.FindProfileByUserID(ctx, userID)
	if err == nil {
		return prof, nil
	}
	if err != ErrProfileNotFound {
		return nil, err
	}
	return s.CreateProfile(ctx, userID)
}

// UpdateProfile applies one atomic $set merge of the supplied fields and
// stamps updated_at. The document is created if missing. Returns whether
// any stored field actually changed.
func (s *MongoStore) UpdateProfile(ctx context.Context, userID string, set bson.M) (bool, error) {
	merged := bson.M{"updated_at": time.Now().UTC()}
	for k, v := range set {
		merged[k] = v
	}

	res, err := s.profilesCol.UpdateOne(
		ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": merged,
			"$setOnInsert": bson.M{
				"profile_id": uuid.New().String(),
				"user_id":    userID,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0 || res.UpsertedCount > 0, nil
}
