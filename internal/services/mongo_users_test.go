package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestFindUserByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		store := &MongoStore{usersCol: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "career_compass.users", mtest.FirstBatch, bson.D{
			{Key: "user_id", Value: "user-1"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password_hash", Value: "hash"},
		}))

		user, err := store.FindUserByID(context.Background(), "user-1")
		require.NoError(mt, err)
		assert.Equal(mt, "user-1", user.UserID)
		assert.Equal(mt, "ada@example.com", user.Email)
	})

	mt.Run("not found", func(mt *mtest.T) {
		store := &MongoStore{usersCol: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "career_compass.users", mtest.FirstBatch))

		_, err := store.FindUserByID(context.Background(), "missing")
		assert.ErrorIs(mt, err, ErrUserNotFound)
	})
}

func TestFindUserByEmailNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		store := &MongoStore{usersCol: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "career_compass.users", mtest.FirstBatch))

		_, err := store.FindUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, ErrUserNotFound)
	})
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key maps to ErrEmailExists", func(mt *mtest.T) {
		store := &MongoStore{usersCol: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: career_compass.users index: email_1",
		}))

		_, err := store.CreateUser(context.Background(), "ada@example.com", "hash")
		assert.ErrorIs(mt, err, ErrEmailExists)
	})

	mt.Run("insert succeeds", func(mt *mtest.T) {
		store := &MongoStore{usersCol: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		user, err := store.CreateUser(context.Background(), "ada@example.com", "hash")
		require.NoError(mt, err)
		assert.NotEmpty(mt, user.UserID)
		assert.Equal(mt, "ada@example.com", user.Email)
		assert.False(mt, user.CreatedAt.IsZero())
	})
}
