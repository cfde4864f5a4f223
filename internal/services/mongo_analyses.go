package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careercompass/backend/internal/models"
)

// Listing is capped: only the most recent analyses are ever returned.
const maxAnalysesPerUser = 100

// CreateAnalysis persists one immutable analyze-career result, serialized.
func (s *MongoStore) CreateAnalysis(ctx context.Context, userID, resultJSON string) (*models.CareerAnalysis, error) {
	analysis := &models.CareerAnalysis{
		AnalysisID:         uuid.New().String(),
		UserID:             userID,
		AnalysisResultJSON: resultJSON,
		CreatedAt:          time.Now().UTC(),
	}

	if _, err := s.analysesCol.InsertOne(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// FindAnalysesByUserID returns the user's analyses newest first, at most 100.
func (s *MongoStore) FindAnalysesByUserID(ctx context.Context, userID string) ([]models.CareerAnalysis, error) {
	cur, err := s.analysesCol.Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(maxAnalysesPerUser),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	analyses := make([]models.CareerAnalysis, 0)
	for cur.Next(ctx) {
		var a models.CareerAnalysis
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return analyses, nil
}
