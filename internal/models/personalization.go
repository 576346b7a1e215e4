package models

// PersonalizationLabel classifies a personalization score
type PersonalizationLabel string

const (
	PersonalizationLow     PersonalizationLabel = "low"
	PersonalizationNeutral PersonalizationLabel = "neutral"
	PersonalizationHigh    PersonalizationLabel = "high"
)

// PersonalizationResult is the ephemeral output of the scorer.
// It is produced per request and fed to the adaptation providers as a hint;
// it is never persisted.
type PersonalizationResult struct {
	Score float64              `json:"score"`
	Label PersonalizationLabel `json:"label"`
}

// NeutralPersonalization is the default returned whenever the inference
// provider fails or times out. Personalization is an enhancement, never a
// blocking dependency.
func NeutralPersonalization() PersonalizationResult {
	return PersonalizationResult{Score: 0.5, Label: PersonalizationNeutral}
}

// DeviceContext carries device metadata derived from request headers
type DeviceContext struct {
	UserAgent  string `json:"userAgent"`
	IsMobile   bool   `json:"isMobile"`
	LocaleHint string `json:"localeHint"`
}

// LearnerContext describes the learner a lesson is adapted for
type LearnerContext struct {
	UserID        int           `json:"userId"`
	Name          string        `json:"name"`
	Grade         int           `json:"grade"`
	Language      string        `json:"language"`
	Region        string        `json:"region"`
	LearningStyle string        `json:"learningStyle"`
	Device        DeviceContext `json:"device"`
}

// Key returns the cache key for this learner context
func (c LearnerContext) Key() CacheKey {
	return CacheKey{Language: c.Language, Region: c.Region, Grade: c.Grade}
}
