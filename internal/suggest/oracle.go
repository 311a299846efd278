package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Oracle answers a natural-language prompt with JSON decoded into out.
// Its output is advisory only; callers must bounds-check everything
// before touching persisted state.
type Oracle interface {
	Suggest(ctx context.Context, prompt string, out any) error
}

// ChatOracle talks to an OpenAI-compatible chat completions endpoint.
type ChatOracle struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewChatOracle(baseURL, apiKey, model string) *ChatOracle {
	return &ChatOracle{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (o *ChatOracle) Suggest(ctx context.Context, prompt string, out any) error {
	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: "Answer with a single JSON object and nothing else."},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("suggestion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("suggestion request failed: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode suggestion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return fmt.Errorf("suggestion response contained no choices")
	}

	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("suggestion was not valid JSON: %w", err)
	}

	return nil
}
