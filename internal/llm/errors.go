package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoContent is returned when the provider response envelope carries
// no generated text.
var ErrNoContent = errors.New("no text content in provider response")

// ErrMalformedOutput is returned when the model text cannot be parsed
// as a story result even after structural repair. The relay surfaces
// this classification instead of fabricating placeholder content.
var ErrMalformedOutput = errors.New("model output is not valid story JSON")

// ProviderError is a non-2xx response from the model provider. The
// status code is preserved so the relay can forward it.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Body)
}

// IsThrottle reports whether err is a provider throttling response
// (HTTP 429), after the retry budget has been exhausted.
func IsThrottle(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.StatusCode == http.StatusTooManyRequests
}
