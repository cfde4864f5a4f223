package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careercompass/backend/internal/models"
)

// CreateUser inserts a new user with a generated user_id. The unique email
// index is the authority on duplicates regardless of caller pre-checks.
func (s *MongoStore) CreateUser(ctx context.Context, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return user, nil
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoStore) FindUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
