package models

import (
	"strings"
	"time"
)

// Profile is user-editable career data stored in Mongo, one doc per user.
// CVText is derived from CVPDFBase64 at upload time, never set directly.
type Profile struct {
	ProfileID            string    `json:"profile_id" bson:"profile_id"`
	UserID               string    `json:"user_id" bson:"user_id"`
	Name                 string    `json:"name" bson:"name,omitempty"`
	Degree               string    `json:"degree" bson:"degree,omitempty"`
	Qualifications       string    `json:"qualifications" bson:"qualifications,omitempty"`
	Skills               string    `json:"skills" bson:"skills,omitempty"`
	GeminiAPIKey         string    `json:"gemini_api_key" bson:"gemini_api_key,omitempty"`
	ProfilePictureBase64 string    `json:"profile_picture_base64" bson:"profile_picture_base64,omitempty"`
	CVPDFBase64          string    `json:"cv_pdf_base64" bson:"cv_pdf_base64,omitempty"`
	CVText               string    `json:"cv_text" bson:"cv_text,omitempty"`
	UpdatedAt            time.Time `json:"updated_at" bson:"updated_at"`
}

// IsComplete reports whether every field required for a career analysis is set.
func (p *Profile) IsComplete() bool {
	required := []string{p.Name, p.Degree, p.Qualifications, p.Skills, p.CVText}
	for _, f := range required {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// UpdateProfileRequest is a sparse merge: nil fields are left untouched.
type UpdateProfileRequest struct {
	Name                 *string `json:"name"`
	Degree               *string `json:"degree"`
	Qualifications       *string `json:"qualifications"`
	Skills               *string `json:"skills"`
	GeminiAPIKey         *string `json:"gemini_api_key"`
	ProfilePictureBase64 *string `json:"profile_picture_base64"`
	CVPDFBase64          *string `json:"cv_pdf_base64"`
}

type ProfileResponse struct {
	Name                 string `json:"name"`
	Degree               string `json:"degree"`
	Qualifications       string `json:"qualifications"`
	Skills               string `json:"skills"`
	GeminiAPIKey         string `json:"gemini_api_key"`
	ProfilePictureBase64 string `json:"profile_picture_base64"`
	CVPDFBase64          string `json:"cv_pdf_base64"`
	CVText               string `json:"cv_text"`
}

func NewProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		Name:                 p.Name,
		Degree:               p.Degree,
		Qualifications:       p.Qualifications,
		Skills:               p.Skills,
		GeminiAPIKey:         p.GeminiAPIKey,
		ProfilePictureBase64: p.ProfilePictureBase64,
		CVPDFBase64:          p.CVPDFBase64,
		CVText:               p.CVText,
	}
}
