package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/careercompass/backend/internal/middleware"
	"github.com/careercompass/backend/internal/models"
	"github.com/careercompass/backend/internal/services"
)

// CareerAdvisor is the external recommendation oracle.
type CareerAdvisor interface {
	AnalyzeCareerPaths(ctx context.Context, apiKey string, facts services.ProfileFacts) ([]models.CareerPath, error)
	SearchCareerPath(ctx context.Context, apiKey string, facts services.ProfileFacts, careerQuery string) ([]models.CareerPath, error)
}

type CareerHandler struct {
	profiles ProfileStore
	analyses AnalysisStore
	advisor  CareerAdvisor
}

func NewCareerHandler(profiles ProfileStore, analyses AnalysisStore, advisor CareerAdvisor) *CareerHandler {
	return &CareerHandler{
		profiles: profiles,
		analyses: analyses,
		advisor:  advisor,
	}
}

// AnalyzeCareer runs the full pipeline: load profile, check preconditions,
// consult the oracle, persist the result.
func (h *CareerHandler) AnalyzeCareer(w http.ResponseWriter, r *http.Request) {
	// An abandoned request still completes: the oracle call and the persisted
	// analysis must not be cancelled by a client disconnect.
	ctx := context.WithoutCancel(r.Context())

	prof, ok := h.eligibleProfile(ctx, w, r)
	if !ok {
		return
	}

	paths, err := h.advisor.AnalyzeCareerPaths(ctx, prof.GeminiAPIKey, profileFacts(prof))
	if err != nil {
		writeAdvisorError(w, err)
		return
	}

	resultJSON, err := json.Marshal(paths)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to serialize analysis")
		return
	}
	if _, err := h.analyses.CreateAnalysis(ctx, prof.UserID, string(resultJSON)); err != nil {
		log.Printf("[AnalyzeCareer] user=%s error=%v", prof.UserID, err)
		writeError(w, http.StatusInternalServerError, "Failed to save analysis")
		return
	}

	writeJSON(w, http.StatusOK, models.CareerPathsResponse{CareerPaths: paths})
}

// SearchCareer is the read-only variant: same preconditions, nothing persisted.
func (h *CareerHandler) SearchCareer(w http.ResponseWriter, r *http.Request) {
	var req models.CareerSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.CareerQuery) == "" {
		writeError(w, http.StatusBadRequest, "career_query is required")
		return
	}

	ctx := context.WithoutCancel(r.Context())

	prof, ok := h.eligibleProfile(ctx, w, r)
	if !ok {
		return
	}

	paths, err := h.advisor.SearchCareerPath(ctx, prof.GeminiAPIKey, profileFacts(prof), req.CareerQuery)
	if err != nil {
		writeAdvisorError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CareerPathsResponse{CareerPaths: paths})
}

func (h *CareerHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	analyses, err := h.analyses.FindAnalysesByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("[ListAnalyses] user=%s error=%v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to load analyses")
		return
	}

	entries := make([]models.AnalysisEntry, 0, len(analyses))
	for _, a := range analyses {
		entries = append(entries, models.AnalysisEntry{
			ID:        a.AnalysisID,
			CreatedAt: a.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999"),
			Result:    json.RawMessage(a.AnalysisResultJSON),
		})
	}
	writeJSON(w, http.StatusOK, models.AnalysesResponse{Analyses: entries})
}

// eligibleProfile loads the caller's profile and applies the analysis
// preconditions in order: profile exists, API key set, profile complete.
func (h *CareerHandler) eligibleProfile(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Profile, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	prof, err := h.profiles.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return nil, false
		}
		log.Printf("[CareerHandler] user=%s error=%v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to load profile")
		return nil, false
	}

	if strings.TrimSpace(prof.GeminiAPIKey) == "" {
		writeError(w, http.StatusBadRequest, "Gemini API key not set. Please update your profile with a valid API key.")
		return nil, false
	}
	if !prof.IsComplete() {
		writeError(w, http.StatusBadRequest, "Profile incomplete. Please fill all required fields including CV upload.")
		return nil, false
	}
	return prof, true
}

func profileFacts(p *models.Profile) services.ProfileFacts {
	return services.ProfileFacts{
		Name:           p.Name,
		Degree:         p.Degree,
		Qualifications: p.Qualifications,
		Skills:         p.Skills,
		CVText:         p.CVText,
	}
}

// writeAdvisorError maps oracle failures onto HTTP statuses. Nothing is
// retried and parse errors are surfaced verbatim.
func writeAdvisorError(w http.ResponseWriter, err error) {
	var upstream *services.UpstreamError
	switch {
	case errors.Is(err, services.ErrUpstreamTimeout):
		writeError(w, http.StatusGatewayTimeout, "Gemini API request timed out")
	case errors.As(err, &upstream):
		writeError(w, http.StatusBadGateway, upstream.Error())
	case errors.Is(err, services.ErrMalformedResponse):
		writeError(w, http.StatusBadGateway, "Failed to parse Gemini response: "+err.Error())
	case errors.Is(err, services.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, "Gemini API unreachable: "+err.Error())
	default:
		log.Printf("[CareerHandler] advisor error=%v", err)
		writeError(w, http.StatusInternalServerError, "Error analyzing career paths")
	}
}
