// Package client implements the kiosk's HTTP client for the story
// relay.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alhariq/mahkah/pkg/types"
)

// ErrorKind groups relay failures by how the kiosk should react.
type ErrorKind int

const (
	// KindTransport covers network failures and unreachable relays.
	KindTransport ErrorKind = iota
	// KindNotAPlant means the photo was readable but shows no plant.
	KindNotAPlant
	// KindBusy means the relay or the provider is throttled.
	KindBusy
	// KindBadRequest covers validation failures and oversized payloads.
	KindBadRequest
	// KindService covers provider and relay-side failures.
	KindService
)

// StoryError is a classified relay failure. Message, when present, is
// localized and safe to show to the visitor.
type StoryError struct {
	Kind    ErrorKind
	Code    types.ErrorCode
	Status  int
	Message string
}

func (e *StoryError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("story request failed (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("story request failed (%s): status %d", e.Code, e.Status)
}

// StoryClient talks to the story relay. It does not retry; the relay
// owns the retry budget for throttled providers.
type StoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewStoryClient creates a client for the relay at baseURL. The
// timeout must cover the relay's full generation budget, retries
// included.
func NewStoryClient(baseURL string, timeout time.Duration) *StoryClient {
	return &StoryClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate sends a photo to the relay and returns the parsed story.
// Failures come back as *StoryError.
func (c *StoryClient) Generate(ctx context.Context, imageDataURI string, visitor types.VisitorInfo) (*types.StoryResult, error) {
	body, err := json.Marshal(types.StoryRequest{
		ImageBase64: imageDataURI,
		VisitorName: visitor.Name,
		VisitorType: visitor.Type,
		Lang:        visitor.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode story request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/story", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build story request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &StoryError{Kind: KindTransport, Message: ""}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyError(resp)
	}

	var result types.StoryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &StoryError{Kind: KindService, Status: resp.StatusCode}
	}
	return &result, nil
}

// Healthy reports whether the relay answers its health endpoint.
func (c *StoryClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// classifyError turns a non-200 relay response into a StoryError. An
// unreadable body still yields a classified error from the status.
func classifyError(resp *http.Response) *StoryError {
	var relayErr types.RelayError
	_ = json.NewDecoder(resp.Body).Decode(&relayErr)

	storyErr := &StoryError{
		Code:    relayErr.Code,
		Status:  resp.StatusCode,
		Message: relayErr.Message,
	}

	switch relayErr.Code {
	case types.CodeNotAPlant:
		storyErr.Kind = KindNotAPlant
	case types.CodeRateLimited:
		storyErr.Kind = KindBusy
	case types.CodeMissingFields, types.CodePayloadTooLarge, types.CodeMethodNotAllowed:
		storyErr.Kind = KindBadRequest
	default:
		// Unclassified bodies fall back to the HTTP status.
		if relayErr.Code == "" && resp.StatusCode == http.StatusTooManyRequests {
			storyErr.Kind = KindBusy
			break
		}
		storyErr.Kind = KindService
	}
	return storyErr
}
