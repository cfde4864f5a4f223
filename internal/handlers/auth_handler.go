package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/careercompass/backend/internal/auth"
	"github.com/careercompass/backend/internal/models"
	"github.com/careercompass/backend/internal/services"
)

type AuthHandler struct {
	users    UserStore
	profiles ProfileStore
	tokens   *auth.Tokens
}

func NewAuthHandler(users UserStore, profiles ProfileStore, tokens *auth.Tokens) *AuthHandler {
	return &AuthHandler{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, hash)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("[Register] email=%s error=%v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	// Every user gets an empty profile up front.
	if _, err := h.profiles.CreateProfile(r.Context(), user.UserID); err != nil {
		log.Printf("[Register] user=%s error=%v", user.UserID, err)
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusCreated, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Email:       user.Email,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	user, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		log.Printf("[Login] email=%s error=%v", req.Email, err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Email:       user.Email,
	})
}
