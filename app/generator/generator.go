package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Generator produces draft text for a prompt. The output is returned
// raw; callers decide what to do with it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ChatMessage represents a single message in the chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequestBody represents the request payload for the chat completions API.
type ChatRequestBody struct {
	Model               string        `json:"model"`
	Messages            []ChatMessage `json:"messages"`
	MaxCompletionTokens int           `json:"max_completion_tokens"`
}

// ChatChoice represents one of the returned completions.
type ChatChoice struct {
	Message ChatMessage `json:"message"`
}

// ChatResponseBody represents the structure of the API response.
type ChatResponseBody struct {
	Choices []ChatChoice `json:"choices"`
}

// ChatClient calls an OpenAI-style chat completions endpoint. Single
// attempt, no retries; the request timeout is the only safety net.
type ChatClient struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
}

// NewChatClient creates a ChatClient for the given endpoint and model.
func NewChatClient(apiURL, apiKey, model string) *ChatClient {
	return &ChatClient{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate sends the prompt to the chat completions API and returns the
// generated text.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("generator API key not set")
	}

	reqBody := ChatRequestBody{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a helpful blog writing assistant."},
			{Role: "user", Content: prompt},
		},
		MaxCompletionTokens: 10000,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("non-200 response from completions API: %d; response: %s", resp.StatusCode, string(bodyBytes))
	}

	var responseBody ChatResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&responseBody); err != nil {
		return "", err
	}

	if len(responseBody.Choices) == 0 {
		return "", errors.New("no completions returned")
	}
	if responseBody.Choices[0].Message.Content == "" {
		return "", errors.New("no content in response message")
	}
	return responseBody.Choices[0].Message.Content, nil
}
