package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/edumorph/backend/internal/config"
)

// TranslationClient wraps the NLP provider's text transforms: translation
// into the learner's language and reading-level simplification
type TranslationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewTranslationClient creates a new translation client
func NewTranslationClient(cfg *config.Config) *TranslationClient {
	return &TranslationClient{
		baseURL:    cfg.Providers.AdaptBaseURL,
		httpClient: &http.Client{Timeout: cfg.Providers.TranslateTimeout},
	}
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Translate converts text into the target language. A pure transform: the
// caller decides what a failure means for the response.
func (c *TranslationClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	body, err := json.Marshal(translateRequest{Text: text, TargetLanguage: targetLanguage})
	if err != nil {
		return "", fmt.Errorf("failed to marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation provider returned status %d", resp.StatusCode)
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode translate response: %w", err)
	}

	if parsed.TranslatedText == "" {
		return "", fmt.Errorf("translation provider returned empty text")
	}

	return parsed.TranslatedText, nil
}

type simplifyRequest struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

type simplifyResponse struct {
	SimplifiedText string `json:"simplified_text"`
}

// Simplify rewrites text at the given reading level.
func (c *TranslationClient) Simplify(ctx context.Context, text string, level int) (string, error) {
	body, err := json.Marshal(simplifyRequest{Text: text, Level: level})
	if err != nil {
		return "", fmt.Errorf("failed to marshal simplify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/simplify", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create simplify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("simplify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("simplify provider returned status %d", resp.StatusCode)
	}

	var parsed simplifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode simplify response: %w", err)
	}

	if parsed.SimplifiedText == "" {
		return "", fmt.Errorf("simplify provider returned empty text")
	}

	return parsed.SimplifiedText, nil
}
