package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/edumorph/backend/internal/config"
)

// CompletionClient calls the secondary, prompt-completion adaptation
// provider. Everything the context-rich provider receives as structured
// metadata is folded into a single prompt here.
type CompletionClient struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewCompletionClient creates a new prompt-completion client
func NewCompletionClient(cfg *config.Config) *CompletionClient {
	return &CompletionClient{
		baseURL:     cfg.Providers.OpenAIBaseURL,
		apiKey:      cfg.Providers.OpenAIKey,
		model:       cfg.Providers.OpenAIModel,
		temperature: cfg.Providers.OpenAITemperature,
		httpClient:  &http.Client{Timeout: cfg.Providers.AdaptTimeout},
	}
}

// chatMessage represents a message in the chat completion conversation
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatAdapt asks the completion provider to adapt lesson content for a
// grade, region and language, with the personalization hint folded into the
// prompt as free text
func (c *CompletionClient) ChatAdapt(ctx context.Context, content, language, region string, grade int, hints string) Result {
	prompt := fmt.Sprintf(
		"Translate and culturally adapt for grade %d in %s. Target language: %s. Be concise and age-appropriate.",
		grade, region, language,
	)
	if hints != "" {
		prompt += " Context: " + hints
	}
	prompt += "\n\nLesson:\n" + content

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You adapt educational content with cultural sensitivity and accuracy."},
			{Role: "user", Content: prompt},
		},
		Temperature: c.temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return failure(fmt.Errorf("failed to marshal chat request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Errorf("failed to create chat request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return failure(err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return failure(fmt.Errorf("failed to decode chat response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		message := "unknown error"
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return failure(fmt.Errorf("completion provider returned status %d: %s", resp.StatusCode, message))
	}

	if len(parsed.Choices) == 0 {
		return failure(fmt.Errorf("completion provider returned no choices"))
	}

	return success(strings.TrimSpace(parsed.Choices[0].Message.Content))
}
