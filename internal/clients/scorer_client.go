package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/edumorph/backend/internal/config"
	"github.com/edumorph/backend/internal/models"
	"go.uber.org/zap"
)

// ScorerClient calls the inference provider for a personalization score.
// Scoring is an enhancement, never a blocking dependency: Score absorbs
// every provider failure and returns the neutral default instead.
type ScorerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewScorerClient creates a new personalization scorer client
func NewScorerClient(cfg *config.Config, logger *zap.Logger) *ScorerClient {
	return &ScorerClient{
		baseURL:    cfg.Providers.MLBaseURL,
		httpClient: &http.Client{Timeout: cfg.Providers.ScorerTimeout},
		logger:     logger,
	}
}

type inferRequest struct {
	Grade      int    `json:"grade"`
	Subject    string `json:"subject"`
	Difficulty string `json:"difficulty"`
}

// Score calls the inference provider for a lesson/learner pairing.
// It never returns an error; on provider timeout or failure the neutral
// default {0.5, neutral} is returned.
func (c *ScorerClient) Score(ctx context.Context, grade int, subject, difficulty string) models.PersonalizationResult {
	body, err := json.Marshal(inferRequest{Grade: grade, Subject: subject, Difficulty: difficulty})
	if err != nil {
		return models.NeutralPersonalization()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/infer", bytes.NewReader(body))
	if err != nil {
		return models.NeutralPersonalization()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("personalization scorer unavailable", zap.Error(err))
		return models.NeutralPersonalization()
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("personalization scorer returned non-OK status", zap.Int("status", resp.StatusCode))
		return models.NeutralPersonalization()
	}

	var result models.PersonalizationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Debug("failed to decode personalization response", zap.Error(err))
		return models.NeutralPersonalization()
	}

	if result.Label == "" {
		result.Label = models.PersonalizationNeutral
	}

	return result
}

// Hint renders a personalization result as the free-text hint fed to the
// prompt-completion provider
func Hint(ml models.PersonalizationResult, subject, difficulty string) string {
	return fmt.Sprintf("Personalization score %.2f (%s). Subject: %s. Difficulty: %s.",
		ml.Score, ml.Label, subject, difficulty)
}
