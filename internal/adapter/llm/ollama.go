// Package llm provides the chat model client used for answer
// generation. The client speaks the Ollama chat API.
package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"faqrag/config"
)

type message struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string       `json:"model"`
	Messages []message    `json:"messages"`
	Stream   bool         `json:"stream"`
	Options  *chatOptions `json:"options,omitempty"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type chatResponse struct {
	Model   string  `json:"model"`
	Message message `json:"message"`
	Done    bool    `json:"done"`
}

// OllamaClient is a chat completion client for an Ollama server.
type OllamaClient struct {
	host        string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOllamaClient creates a client from the LLM configuration.
func NewOllamaClient(cfg config.LLMConfig) *OllamaClient {
	return &OllamaClient{
		host:        cfg.Host,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Generate sends the prompt as a single user message and returns the
// model's reply.
func (c *OllamaClient) Generate(prompt string) (string, error) {
	req := chatRequest{
		Model:    c.model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   false,
	}
	if c.temperature > 0 {
		req.Options = &chatOptions{Temperature: c.temperature}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return chatResp.Message.Content, nil
}

// ModelName returns the name of the chat model.
func (c *OllamaClient) ModelName() string {
	return c.model
}
