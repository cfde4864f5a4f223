package models

import (
	"encoding/json"
	"time"
)

// CareerPath is the structured recommendation shape the Gemini prompt mandates.
type CareerPath struct {
	CareerPath        string        `json:"career_path"`
	SuitabilityReason string        `json:"suitability_reason"`
	RequiredSkills    []string      `json:"required_skills"`
	Roadmap           []RoadmapStep `json:"roadmap"`
}

type RoadmapStep struct {
	Step    int    `json:"step"`
	Action  string `json:"action"`
	Details string `json:"details"`
}

// CareerAnalysis is one persisted analyze-career result. Immutable once written.
type CareerAnalysis struct {
	AnalysisID         string    `json:"analysis_id" bson:"analysis_id"`
	UserID             string    `json:"user_id" bson:"user_id"`
	AnalysisResultJSON string    `json:"-" bson:"analysis_result_json"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
}

type CareerSearchRequest struct {
	CareerQuery string `json:"career_query"`
}

type CareerPathsResponse struct {
	CareerPaths []CareerPath `json:"career_paths"`
}

type AnalysisEntry struct {
	ID        string          `json:"id"`
	CreatedAt string          `json:"created_at"`
	Result    json.RawMessage `json:"result"`
}

type AnalysesResponse struct {
	Analyses []AnalysisEntry `json:"analyses"`
}
