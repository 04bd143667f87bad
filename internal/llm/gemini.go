package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// GeminiClient calls the Google generative language REST API for
// multimodal story generation. All HTTP calls are wrapped with circuit
// breaker protection, and throttling responses are retried with
// increasing backoff before being surfaced.
type GeminiClient struct {
	baseURL        string
	apiKey         string
	model          string
	client         *http.Client
	circuitBreaker *CircuitBreaker
	maxAttempts    int
	retryBaseWait  time.Duration
}

// GeminiConfig holds Gemini client configuration.
type GeminiConfig struct {
	// APIKey is the provider credential. Required.
	APIKey string

	// Model is the model name (default: gemini-2.5-flash).
	Model string

	// BaseURL is the API base URL (default: https://generativelanguage.googleapis.com).
	BaseURL string

	// Timeout is the per-attempt request timeout (default: 60s).
	Timeout time.Duration

	// MaxAttempts is the total number of attempts on throttling
	// responses, including the first (default: 3).
	MaxAttempts int

	// RetryBaseWait scales the backoff between attempts: the wait before
	// attempt n+1 is n*RetryBaseWait, i.e. 2s then 4s with the default
	// of 2 seconds.
	RetryBaseWait time.Duration
}

// generateRequest is the request body for models/<m>:generateContent.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// generateResponse is the provider response envelope; the generated
// text is nested at candidates[0].content.parts[0].text.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates a Gemini client with the given configuration,
// applying defaults for every unset field except APIKey.
func NewGeminiClient(config GeminiConfig) *GeminiClient {
	if config.Model == "" {
		config.Model = "gemini-2.5-flash"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = 3
	}
	if config.RetryBaseWait == 0 {
		config.RetryBaseWait = 2 * time.Second
	}

	return &GeminiClient{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		model:   config.Model,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		circuitBreaker: NewCircuitBreaker(),
		maxAttempts:    config.MaxAttempts,
		retryBaseWait:  config.RetryBaseWait,
	}
}

// GenerateStory sends the prompt and inline JPEG data to the model and
// returns the raw generated text.
//
// A throttling response (HTTP 429) is retried up to MaxAttempts total
// attempts with increasing waits between them. Any other provider error
// is surfaced immediately without retry.
func (c *GeminiClient) GenerateStory(ctx context.Context, prompt string, imageBase64 string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result, err := c.circuitBreaker.Execute(ctx, func() (interface{}, error) {
			return c.generate(ctx, prompt, imageBase64)
		})
		if err == nil {
			return result.(string), nil
		}
		lastErr = err

		if !IsThrottle(err) || attempt == c.maxAttempts {
			return "", err
		}

		wait := time.Duration(attempt) * c.retryBaseWait
		log.Printf("gemini: throttled, waiting %v before retry (attempt %d/%d)", wait, attempt, c.maxAttempts)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}

	return "", lastErr
}

// generate is a single attempt without retry or circuit breaker wrapping.
func (c *GeminiClient) generate(ctx context.Context, prompt string, imageBase64 string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     imageBase64,
				}},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 4096,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("gemini: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var respData generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", fmt.Errorf("gemini: failed to decode response: %w", err)
	}

	for _, cand := range respData.Candidates {
		for _, p := range cand.Content.Parts {
			if p.Text != "" {
				return p.Text, nil
			}
		}
	}
	return "", ErrNoContent
}

// GetModel returns the configured model name.
func (c *GeminiClient) GetModel() string {
	return c.model
}

// Compile-time assertion that GeminiClient satisfies StoryGenerator.
var _ StoryGenerator = (*GeminiClient)(nil)
