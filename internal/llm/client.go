// Package llm wraps the hosted text-completion service used for
// parameter extraction and narrative generation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const defaultModel = "gemini-1.5-flash"

// ServiceError is a structured failure from the completion service.
type ServiceError struct {
	StatusCode int
	Message    string
	Retryable  bool
	Cause      error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm: %s", e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

// GeminiClient calls the Gemini generateContent endpoint and exposes it
// as a plain prompt-in, text-out completion.
type GeminiClient struct {
	apiKey      string
	model       string
	baseURL     string
	httpClient  *http.Client
	RetryConfig RetryConfig
}

// NewGeminiClient creates a client. An empty API key yields a client
// whose calls always fail; callers gate on IsAvailable.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		RetryConfig: DefaultRetryConfig,
	}
}

// IsAvailable returns true if the client is configured.
func (c *GeminiClient) IsAvailable() bool {
	return c.apiKey != ""
}

// Complete sends a prompt and returns the raw completion text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", &ServiceError{Message: "completion API key not configured"}
	}
	return WithRetry(ctx, c.RetryConfig, func(ctx context.Context) (string, error) {
		return c.complete(ctx, prompt, maxTokens, temperature)
	})
}

func (c *GeminiClient) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     temperature,
			"maxOutputTokens": maxTokens,
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ServiceError{Message: "completion request failed", Retryable: true, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", classifyHTTPError(resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", &ServiceError{Message: "empty completion response", Retryable: true}
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

func classifyHTTPError(statusCode int, body string) *ServiceError {
	if statusCode == http.StatusTooManyRequests {
		return &ServiceError{
			StatusCode: statusCode,
			Message:    "completion API rate limited",
			Retryable:  true,
		}
	}
	return &ServiceError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("completion API error (HTTP %d): %s", statusCode, body),
		Retryable:  statusCode >= 500,
	}
}
