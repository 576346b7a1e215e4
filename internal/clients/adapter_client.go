package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/edumorph/backend/internal/config"
	"github.com/edumorph/backend/internal/models"
)

// AdapterClient calls the primary, context-rich adaptation provider.
// It receives structured learner, device and content metadata and returns
// lesson text adapted for grade, region and language.
type AdapterClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAdapterClient creates a new context-rich adapter client
func NewAdapterClient(cfg *config.Config) *AdapterClient {
	return &AdapterClient{
		baseURL:    cfg.Providers.AdaptBaseURL,
		httpClient: &http.Client{Timeout: cfg.Providers.AdaptTimeout},
	}
}

type adaptUserContext struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Grade             int    `json:"grade"`
	PreferredLanguage string `json:"preferred_language"`
	Region            string `json:"region"`
	LearningStyle     string `json:"learning_style"`
}

type adaptDeviceContext struct {
	UserAgent  string `json:"user_agent"`
	IsMobile   bool   `json:"is_mobile"`
	LocaleHint string `json:"locale_hint"`
}

type adaptContentContext struct {
	Subject    string   `json:"subject"`
	Difficulty string   `json:"difficulty"`
	Tags       []string `json:"tags"`
}

type adaptRequest struct {
	LessonContent string `json:"lesson_content"`
	Context       struct {
		User    adaptUserContext    `json:"user"`
		Device  adaptDeviceContext  `json:"device"`
		Content adaptContentContext `json:"content"`
	} `json:"context"`
}

type adaptResponse struct {
	AdaptedText string `json:"adapted_text"`
}

// Adapt calls the provider with the full learner context and returns the
// adapted text as an explicit result
func (c *AdapterClient) Adapt(ctx context.Context, lesson *models.Lesson, learner models.LearnerContext) Result {
	reqBody := adaptRequest{LessonContent: lesson.OriginalContent}
	reqBody.Context.User = adaptUserContext{
		ID:                strconv.Itoa(learner.UserID),
		Name:              learner.Name,
		Grade:             learner.Grade,
		PreferredLanguage: learner.Language,
		Region:            learner.Region,
		LearningStyle:     learner.LearningStyle,
	}
	reqBody.Context.Device = adaptDeviceContext{
		UserAgent:  learner.Device.UserAgent,
		IsMobile:   learner.Device.IsMobile,
		LocaleHint: learner.Device.LocaleHint,
	}
	reqBody.Context.Content = adaptContentContext{
		Subject:    lesson.Subject,
		Difficulty: lesson.DifficultyLevel,
		Tags:       []string{lesson.Subject},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return failure(fmt.Errorf("failed to marshal adapt request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/adapt", bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Errorf("failed to create adapt request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failure(fmt.Errorf("adapt provider returned status %d", resp.StatusCode))
	}

	var parsed adaptResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return failure(fmt.Errorf("failed to decode adapt response: %w", err))
	}

	return success(parsed.AdaptedText)
}
