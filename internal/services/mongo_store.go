package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")
)

// MongoStore is the single persistence gateway for users, profiles and
// career analyses. It is constructed once at startup and shared by handlers.
type MongoStore struct {
	client      *mongo.Client
	db          *mongo.Database
	usersCol    *mongo.Collection
	profilesCol *mongo.Collection
	analysesCol *mongo.Collection
}

func NewMongoStore(ctx context.Context, mongoURI, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	s := &MongoStore{
		client:      client,
		db:          db,
		usersCol:    db.Collection("users"),
		profilesCol: db.Collection("profiles"),
		analysesCol: db.Collection("career_analyses"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureIndexes enforces the uniqueness guarantees the gateway owns:
// one account per email, one profile per user.
func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := s.usersCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
	})
	if err != nil {
		return err
	}

	_, err = s.profilesCol.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.analysesCol.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	})
	return err
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
