package services

import (
	"fmt"
	"strings"
)

// ProfileFacts are the five profile fields the prompts interpolate.
type ProfileFacts struct {
	Name           string
	Degree         string
	Qualifications string
	Skills         string
	CVText         string
}

const analysisPromptTemplate = `
Analyze the following user profile:
- Name: %s
- Current Degree: %s
- Qualifications: %s
- Skills: %s
- CV/Resume Text: %s

Based on the user's profile, identify the top 5 most suitable career paths.
For each path, provide a detailed, step-by-step roadmap for success.
The roadmap should include essential skills to learn, projects to build, certifications to get, and networking advice.

Respond with ONLY a valid JSON array in this exact format:
[
  {{
    "career_path": "Career Name",
    "suitability_reason": "Brief explanation of why this fits",
    "required_skills": ["Skill 1", "Skill 2", "Skill 3"],
    "roadmap": [
      {{
        "step": 1,
        "action": "Action title",
        "details": "Detailed description"
      }}
    ]
  }}
]
`

const searchPromptTemplate = `
Analyze the following user profile:
- Name: %s
- Current Degree: %s
- Qualifications: %s
- Skills: %s
- CV/Resume Text: %s

The user is specifically interested in a career as a "%s".
Based on their profile, create a single, detailed, personalized roadmap for them to achieve this career.
Explain why this path might be suitable or what challenges they might face.
The roadmap should include essential skills to learn, projects to build, certifications to get, and networking advice.

Respond with ONLY a valid JSON array containing a single career path object in this exact format:
[
  {{
    "career_path": "%s",
    "suitability_reason": "Detailed explanation",
    "required_skills": ["Skill 1", "Skill 2", "Skill 3"],
    "roadmap": [
      {{
        "step": 1,
        "action": "Action title",
        "details": "Detailed description"
      }}
    ]
  }}
]
`

// AnalysisPrompt renders the top-5 career paths instruction for a profile.
// Pure string interpolation: same facts in, same prompt out.
func AnalysisPrompt(f ProfileFacts) string {
	return fmt.Sprintf(analysisPromptTemplate,
		orNotProvided(f.Name),
		orNotProvided(f.Degree),
		orNotProvided(f.Qualifications),
		orNotProvided(f.Skills),
		orNotProvided(f.CVText),
	)
}

// SearchPrompt renders the single-roadmap instruction for a profile and a
// caller-supplied career query.
func SearchPrompt(f ProfileFacts, careerQuery string) string {
	return fmt.Sprintf(searchPromptTemplate,
		orNotProvided(f.Name),
		orNotProvided(f.Degree),
		orNotProvided(f.Qualifications),
		orNotProvided(f.Skills),
		orNotProvided(f.CVText),
		careerQuery,
		careerQuery,
	)
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
