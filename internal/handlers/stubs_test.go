package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/careercompass/backend/internal/middleware"
	"github.com/careercompass/backend/internal/models"
	"github.com/careercompass/backend/internal/services"
)

// fakeStore is an in-memory stand-in for the Mongo persistence gateway.
type fakeStore struct {
	users    map[string]*models.User    // by email
	profiles map[string]*models.Profile // by user id
	analyses []models.CareerAnalysis
	updates  []bson.M
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		profiles: make(map[string]*models.Profile),
	}
}

func (s *fakeStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	if _, exists := s.users[email]; exists {
		return nil, services.ErrEmailExists
	}
	user := &models.User{
		UserID:       uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[email] = user
	return user, nil
}

func (s *fakeStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, exists := s.users[email]
	if !exists {
		return nil, services.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeStore) CreateProfile(_ context.Context, userID string) (*models.Profile, error) {
	if prof, exists := s.profiles[userID]; exists {
		return prof, nil
	}
	prof := &models.Profile{
		ProfileID: uuid.New().String(),
		UserID:    userID,
		UpdatedAt: time.Now().UTC(),
	}
	s.profiles[userID] = prof
	return prof, nil
}

func (s *fakeStore) FindProfileByUserID(_ context.Context, userID string) (*models.Profile, error) {
	prof, exists := s.profiles[userID]
	if !exists {
		return nil, services.ErrProfileNotFound
	}
	return prof, nil
}

func (s *fakeStore) GetOrCreateProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if prof, exists := s.profiles[userID]; exists {
		return prof, nil
	}
	return s.CreateProfile(ctx, userID)
}

func (s *fakeStore) UpdateProfile(ctx context.Context, userID string, set bson.M) (bool, error) {
	s.updates = append(s.updates, set)

	prof, exists := s.profiles[userID]
	if !exists {
		prof, _ = s.CreateProfile(ctx, userID)
	}
	for k, v := range set {
		val, _ := v.(string)
		switch k {
		case "name":
			prof.Name = val
		case "degree":
			prof.Degree = val
		case "qualifications":
			prof.Qualifications = val
		case "skills":
			prof.Skills = val
		case "gemini_api_key":
			prof.GeminiAPIKey = val
		case "profile_picture_base64":
			prof.ProfilePictureBase64 = val
		case "cv_pdf_base64":
			prof.CVPDFBase64 = val
		case "cv_text":
			prof.CVText = val
		}
	}
	prof.UpdatedAt = time.Now().UTC()
	return len(set) > 0, nil
}

func (s *fakeStore) CreateAnalysis(_ context.Context, userID, resultJSON string) (*models.CareerAnalysis, error) {
	analysis := models.CareerAnalysis{
		AnalysisID:         uuid.New().String(),
		UserID:             userID,
		AnalysisResultJSON: resultJSON,
		CreatedAt:          time.Now().UTC(),
	}
	s.analyses = append(s.analyses, analysis)
	return &analysis, nil
}

// FindAnalysesByUserID mirrors the gateway contract: newest first, capped at 100.
func (s *fakeStore) FindAnalysesByUserID(_ context.Context, userID string) ([]models.CareerAnalysis, error) {
	out := make([]models.CareerAnalysis, 0)
	for i := len(s.analyses) - 1; i >= 0; i-- {
		if s.analyses[i].UserID == userID {
			out = append(out, s.analyses[i])
		}
		if len(out) == 100 {
			break
		}
	}
	return out, nil
}

// stubAdvisor records what it was asked and returns canned paths.
type stubAdvisor struct {
	paths    []models.CareerPath
	err      error
	gotKey   string
	gotFacts services.ProfileFacts
	gotQuery string
	calls    int
}

func (a *stubAdvisor) AnalyzeCareerPaths(_ context.Context, apiKey string, facts services.ProfileFacts) ([]models.CareerPath, error) {
	a.calls++
	a.gotKey = apiKey
	a.gotFacts = facts
	return a.paths, a.err
}

func (a *stubAdvisor) SearchCareerPath(_ context.Context, apiKey string, facts services.ProfileFacts, careerQuery string) ([]models.CareerPath, error) {
	a.calls++
	a.gotKey = apiKey
	a.gotFacts = facts
	a.gotQuery = careerQuery
	return a.paths, a.err
}

func authedRequest(method, target string, body io.Reader, userID string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}
