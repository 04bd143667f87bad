package types

// StoryRequest is the JSON body of POST /api/story.
type StoryRequest struct {
	ImageBase64 string      `json:"imageBase64"` // Data URI or raw base64 JPEG
	VisitorName string      `json:"visitorName"`
	VisitorType VisitorType `json:"visitorType"`
	Lang        Language    `json:"lang"`
}

// Visitor assembles a VisitorInfo from the request fields.
func (r StoryRequest) Visitor() VisitorInfo {
	return VisitorInfo{Name: r.VisitorName, Type: r.VisitorType, Language: r.Lang}
}

// ErrorCode classifies a relay failure. Codes travel end-to-end from
// the relay through the story client to the UI, which maps them to
// localized messages without inspecting error strings.
type ErrorCode string

const (
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	CodeMissingFields    ErrorCode = "MISSING_FIELDS"
	CodePayloadTooLarge  ErrorCode = "PAYLOAD_TOO_LARGE"
	CodeConfigMissing    ErrorCode = "CONFIG_MISSING"
	CodeProviderError    ErrorCode = "PROVIDER_ERROR"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"
	CodeNoContent        ErrorCode = "NO_CONTENT"
	CodeMalformedOutput  ErrorCode = "MALFORMED_OUTPUT"
	CodeNotAPlant        ErrorCode = "NOT_A_PLANT"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// RelayError is the standard error response body of the relay.
// Error is the short machine-oriented summary; Message, when present,
// is a localized human-readable string safe to show to the visitor.
type RelayError struct {
	Error   string    `json:"error"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
	Details string    `json:"details,omitempty"`
}
