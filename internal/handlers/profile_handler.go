package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/careercompass/backend/internal/middleware"
	"github.com/careercompass/backend/internal/models"
	"github.com/careercompass/backend/internal/services"
)

// TextExtractor turns an encoded CV document into plain text.
type TextExtractor func(encoded string) (string, error)

type ProfileHandler struct {
	profiles ProfileStore
	extract  TextExtractor
}

func NewProfileHandler(profiles ProfileStore, extract TextExtractor) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, extract: extract}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prof, err := h.profiles.GetOrCreateProfile(ctx, userID)
	if err != nil {
		log.Printf("[GetProfile] user=%s error=%v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, models.NewProfileResponse(prof))
}

// UpdateProfile merges only the supplied fields. A CV upload is all-or-nothing:
// if text extraction fails, nothing is persisted, not even the raw document.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Degree != nil {
		set["degree"] = *req.Degree
	}
	if req.Qualifications != nil {
		set["qualifications"] = *req.Qualifications
	}
	if req.Skills != nil {
		set["skills"] = *req.Skills
	}
	if req.GeminiAPIKey != nil {
		set["gemini_api_key"] = *req.GeminiAPIKey
	}
	if req.ProfilePictureBase64 != nil {
		set["profile_picture_base64"] = *req.ProfilePictureBase64
	}

	if req.CVPDFBase64 != nil {
		cvText, err := h.extract(*req.CVPDFBase64)
		if err != nil {
			if errors.Is(err, services.ErrInvalidDocument) {
				writeError(w, http.StatusBadRequest, "Error parsing PDF: "+err.Error())
				return
			}
			log.Printf("[UpdateProfile] user=%s error=%v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to process CV")
			return
		}
		set["cv_pdf_base64"] = *req.CVPDFBase64
		set["cv_text"] = cvText
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.profiles.UpdateProfile(ctx, userID, set); err != nil {
		log.Printf("[UpdateProfile] user=%s error=%v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Profile updated successfully"})
}
