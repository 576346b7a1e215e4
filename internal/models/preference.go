package models

import "time"

// LearningStyle values accepted for user preferences
const (
	LearningStyleVisual      = "visual"
	LearningStyleAuditory    = "auditory"
	LearningStyleKinesthetic = "kinesthetic"
)

// UserPreferences holds the personalization defaults for a user.
// Query parameters on the adapted-lesson endpoint override these per request.
type UserPreferences struct {
	UserID            int       `json:"userId"`
	Name              string    `json:"name,omitempty"`
	PreferredLanguage string    `json:"preferredLanguage"`
	Region            string    `json:"region"`
	Grade             int       `json:"grade"`
	LearningStyle     string    `json:"learningStyle"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// UpdatePreferencesRequest represents a preference update (partial)
type UpdatePreferencesRequest struct {
	PreferredLanguage string `json:"preferredLanguage,omitempty"`
	Region            string `json:"region,omitempty"`
	Grade             *int   `json:"grade,omitempty"`
	LearningStyle     string `json:"learningStyle,omitempty"`
}
