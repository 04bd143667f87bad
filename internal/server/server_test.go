// Package server_test provides unit tests for the relay HTTP server.
package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alhariq/mahkah/internal/config"
	"github.com/alhariq/mahkah/internal/llm"
	"github.com/alhariq/mahkah/internal/server"
	"github.com/alhariq/mahkah/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator returns a fixed response for every request.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) GenerateStory(ctx context.Context, prompt, image string) (string, error) {
	return s.text, s.err
}

func (s *stubGenerator) GetModel() string { return "stub-model" }

const stubStoryJSON = `{
  "is_plant": true,
  "title": "نخلة الواحة",
  "story": "على أطراف الحريق وقفت هذه النخلة شاهدة على مواسم الخير.",
  "fun_fact": "النخلة تثمر لعشرات السنين.",
  "question": "ما أول ثمرة قطفتها بيدك؟",
  "suggested_plant_name": "نخلة الصبر",
  "seasonal_status_hint": "موسم الرطب"
}`

// startTestServer starts the relay on a random port and registers
// cleanup with t.Cleanup. It returns the base URL.
func startTestServer(t *testing.T, cfg *config.Config, gen llm.StoryGenerator) string {
	t.Helper()

	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	cfg.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())

	addr, _, err := server.Start(ctx, cfg, gen)
	require.NoError(t, err, "server failed to start")

	t.Cleanup(func() {
		cancel()
		time.Sleep(50 * time.Millisecond)
	})

	return "http://" + addr
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.APIKey = "test-key"
	cfg.LLM.Timeout = 5 * time.Second
	cfg.Relay.MaxImageBytes = 10 << 20
	cfg.Relay.RateLimitRPS = 100
	cfg.Relay.RateLimitBurst = 200
	cfg.Security.SecurityMode = "development"
	return cfg
}

func postStory(t *testing.T, baseURL string, req types.StoryRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(baseURL+"/api/story", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestServerStartsOnRandomPort(t *testing.T) {
	baseURL := startTestServer(t, testConfig(), &stubGenerator{text: stubStoryJSON})
	assert.NotEqual(t, "http://", baseURL)
	assert.NotContains(t, baseURL, ":0")
}

func TestServerHealthEndpoint(t *testing.T) {
	baseURL := startTestServer(t, testConfig(), &stubGenerator{text: stubStoryJSON})

	resp, err := http.Get(baseURL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestServerStoryEndToEnd(t *testing.T) {
	baseURL := startTestServer(t, testConfig(), &stubGenerator{text: stubStoryJSON})

	resp := postStory(t, baseURL, types.StoryRequest{
		ImageBase64: "data:image/jpeg;base64,aW1hZ2U=",
		VisitorName: "Sara",
		VisitorType: types.VisitorFamily,
		Lang:        types.LangArabic,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result types.StoryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.IsPlantImage())
	assert.Equal(t, "نخلة الواحة", result.Title)
	assert.NotEmpty(t, result.Story)
}

func TestServerStoryRejectsInvalidRequest(t *testing.T) {
	baseURL := startTestServer(t, testConfig(), &stubGenerator{text: stubStoryJSON})

	resp := postStory(t, baseURL, types.StoryRequest{VisitorName: "Sara"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var relayErr types.RelayError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&relayErr))
	assert.Equal(t, types.CodeMissingFields, relayErr.Code)
}

func TestServerProviderFailureSurfaces(t *testing.T) {
	gen := &stubGenerator{err: &llm.ProviderError{StatusCode: http.StatusTooManyRequests, Body: "quota"}}
	baseURL := startTestServer(t, testConfig(), gen)

	resp := postStory(t, baseURL, types.StoryRequest{
		ImageBase64: "aW1hZ2U=",
		VisitorName: "Omar",
		VisitorType: types.VisitorChild,
		Lang:        types.LangEnglish,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var relayErr types.RelayError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&relayErr))
	assert.Equal(t, types.CodeRateLimited, relayErr.Code)
	assert.NotEmpty(t, relayErr.Message)
}

func TestServerAuthRequiredInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.Security.SecurityMode = "production"
	cfg.Security.APIToken = "festival-token"
	baseURL := startTestServer(t, cfg, &stubGenerator{text: stubStoryJSON})

	// Unauthenticated story request is rejected.
	resp := postStory(t, baseURL, types.StoryRequest{
		ImageBase64: "aW1hZ2U=",
		VisitorName: "Sara",
		VisitorType: types.VisitorFamily,
		Lang:        types.LangArabic,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Health stays open for kiosk liveness checks.
	healthResp, err := http.Get(baseURL + "/api/health")
	require.NoError(t, err)
	healthResp.Body.Close()
	assert.Equal(t, http.StatusOK, healthResp.StatusCode)

	// The right bearer token gets through.
	body, err := json.Marshal(types.StoryRequest{
		ImageBase64: "aW1hZ2U=",
		VisitorName: "Sara",
		VisitorType: types.VisitorFamily,
		Lang:        types.LangArabic,
	})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/story", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer festival-token")
	authedResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer authedResp.Body.Close()
	assert.Equal(t, http.StatusOK, authedResp.StatusCode)
}

func TestServerShutdownOnContextCancel(t *testing.T) {
	cfg := testConfig()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	addr, _, err := server.Start(ctx, cfg, &stubGenerator{text: stubStoryJSON})
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	time.Sleep(200 * time.Millisecond)

	_, err = http.Get("http://" + addr + "/api/health")
	assert.Error(t, err, "server should stop accepting connections after shutdown")
}
