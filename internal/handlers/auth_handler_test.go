package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercompass/backend/internal/auth"
	"github.com/careercompass/backend/internal/models"
)

func newAuthHandler(store *fakeStore) (*AuthHandler, *auth.Tokens) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewAuthHandler(store, store, tokens), tokens
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	store := newFakeStore()
	handler, tokens := newAuthHandler(store)

	rec := postJSON(t, handler.Register, "/api/auth/register", models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "ada@example.com", resp.Email)

	email, err := tokens.Resolve(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)

	// Registration creates the user and an empty profile.
	user, ok := store.users["ada@example.com"]
	require.True(t, ok)
	prof, ok := store.profiles[user.UserID]
	require.True(t, ok)
	assert.Empty(t, prof.Name)
	assert.Empty(t, prof.Skills)
	assert.Empty(t, prof.CVText)
	assert.Empty(t, prof.GeminiAPIKey)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	handler, _ := newAuthHandler(store)

	req := models.RegisterRequest{Email: "ada@example.com", Password: "hunter22"}
	rec := postJSON(t, handler.Register, "/api/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.Register, "/api/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Email already registered", resp.Error)
}

func TestRegisterValidation(t *testing.T) {
	store := newFakeStore()
	handler, _ := newAuthHandler(store)

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing email", models.RegisterRequest{Password: "hunter22"}},
		{"malformed email", models.RegisterRequest{Email: "not-an-email", Password: "hunter22"}},
		{"missing password", models.RegisterRequest{Email: "ada@example.com"}},
		{"short password", models.RegisterRequest{Email: "ada@example.com", Password: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, handler.Register, "/api/auth/register", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, store.users)
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	handler, _ := newAuthHandler(store)

	rec := postJSON(t, handler.Register, "/api/auth/register", models.RegisterRequest{
		Email:    "ada@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, handler.Login, "/api/auth/login", models.LoginRequest{
			Email:    "ada@example.com",
			Password: "hunter22",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.TokenResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "ada@example.com", resp.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, handler.Login, "/api/auth/login", models.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, handler.Login, "/api/auth/login", models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "hunter22",
		})
		// Same status as a bad password: no account enumeration.
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
