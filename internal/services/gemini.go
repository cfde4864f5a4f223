package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/careercompass/backend/internal/models"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"

var (
	ErrUpstreamTimeout     = errors.New("gemini request timed out")
	ErrUpstreamUnavailable = errors.New("gemini unreachable")
	ErrMalformedResponse   = errors.New("malformed gemini response")
)

// UpstreamError is a non-2xx reply from the Gemini API, body included so the
// caller sees what the API actually said.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("gemini api error: status %d: %s", e.Status, e.Body)
}

// GeminiClient talks to the generative-language REST API. The API key is
// per-user and supplied on every call, never held by the client.
type GeminiClient struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		Endpoint: defaultGeminiEndpoint,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// AnalyzeCareerPaths asks for the top 5 career paths for the profile.
func (c *GeminiClient) AnalyzeCareerPaths(ctx context.Context, apiKey string, facts ProfileFacts) ([]models.CareerPath, error) {
	return c.generate(ctx, apiKey, AnalysisPrompt(facts))
}

// SearchCareerPath asks for a single roadmap toward the queried career.
func (c *GeminiClient) SearchCareerPath(ctx context.Context, apiKey string, facts ProfileFacts, careerQuery string) ([]models.CareerPath, error) {
	return c.generate(ctx, apiKey, SearchPrompt(facts, careerQuery))
}

// generate is one round trip: no retries, no caching, no streaming.
func (c *GeminiClient) generate(ctx context.Context, apiKey, prompt string) ([]models.CareerPath, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.5,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"?key="+url.QueryEscape(apiKey), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrUpstreamTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	return decodeCareerPaths(out.Candidates[0].Content.Parts[0].Text)
}

// decodeCareerPaths strips any markdown fencing and parses the remaining
// text strictly as a JSON array of career paths.
func decodeCareerPaths(text string) ([]models.CareerPath, error) {
	var paths []models.CareerPath
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &paths); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return paths, nil
}

// stripCodeFences removes a leading ``` or ```json fence and a trailing ```.
func stripCodeFences(s string) string {
	clean := strings.TrimSpace(s)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")

	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
