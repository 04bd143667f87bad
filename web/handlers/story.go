// Package handlers provides the HTTP handlers and middleware for the
// Mahkah story relay.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alhariq/mahkah/internal/config"
	"github.com/alhariq/mahkah/internal/imaging"
	"github.com/alhariq/mahkah/internal/llm"
	"github.com/alhariq/mahkah/pkg/types"
)

// busyMessages are the localized visitor-facing messages for a
// throttled provider, shown after the relay's retry budget is spent.
var busyMessages = map[types.Language]string{
	types.LangArabic:  "الخدمة مزدحمة حالياً، يرجى المحاولة بعد قليل",
	types.LangEnglish: "The service is busy right now, please try again in a moment.",
}

// StoryHandlers contains the HTTP handlers for story generation.
type StoryHandlers struct {
	config    *config.Config
	generator llm.StoryGenerator
	hub       *EventsHub // optional; nil disables activity broadcasts
}

// NewStoryHandlers creates a StoryHandlers instance. The hub may be nil.
func NewStoryHandlers(cfg *config.Config, generator llm.StoryGenerator, hub *EventsHub) *StoryHandlers {
	return &StoryHandlers{
		config:    cfg,
		generator: generator,
		hub:       hub,
	}
}

// GenerateStory handles POST /api/story.
//
// It validates the request, builds the festival prompt, calls the model
// provider (throttle retry lives inside the provider client), runs the
// response through the repair ladder, and classifies the outcome. Every
// response is a single structured object; provider and parsing failures
// never escape as uncaught panics.
func (h *StoryHandlers) GenerateStory(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("story: recovered from panic: %v", rec)
			respondRelayError(w, http.StatusInternalServerError, types.RelayError{
				Error: "Internal server error",
				Code:  types.CodeInternalError,
			})
		}
	}()

	if r.Method != http.MethodPost {
		respondRelayError(w, http.StatusMethodNotAllowed, types.RelayError{
			Error: "Method Not Allowed",
			Code:  types.CodeMethodNotAllowed,
		})
		return
	}

	if h.config.LLM.APIKey == "" {
		log.Printf("story: API key not configured")
		respondRelayError(w, http.StatusInternalServerError, types.RelayError{
			Error: "API Key not configured",
			Code:  types.CodeConfigMissing,
		})
		return
	}

	// Bound the body read; the image ceiling plus headroom for the JSON
	// envelope around it.
	r.Body = http.MaxBytesReader(w, r.Body, h.config.Relay.MaxImageBytes+64*1024)

	var req types.StoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondRelayError(w, http.StatusRequestEntityTooLarge, types.RelayError{
				Error: "Image payload too large",
				Code:  types.CodePayloadTooLarge,
			})
			return
		}
		respondRelayError(w, http.StatusBadRequest, types.RelayError{
			Error: "Missing required fields",
			Code:  types.CodeMissingFields,
		})
		return
	}

	visitor := req.Visitor()
	if req.ImageBase64 == "" || visitor.Validate() != nil {
		respondRelayError(w, http.StatusBadRequest, types.RelayError{
			Error: "Missing required fields",
			Code:  types.CodeMissingFields,
		})
		return
	}

	if int64(len(req.ImageBase64)) > h.config.Relay.MaxImageBytes {
		respondRelayError(w, http.StatusRequestEntityTooLarge, types.RelayError{
			Error: "Image payload too large",
			Code:  types.CodePayloadTooLarge,
		})
		return
	}

	imageData := imaging.StripDataURI(req.ImageBase64)
	prompt := llm.StoryPrompt(visitor)

	log.Printf("story: generating for visitor type=%s lang=%s model=%s",
		visitor.Type, visitor.Language, h.generator.GetModel())

	text, err := h.generator.GenerateStory(r.Context(), prompt, imageData)
	if err != nil {
		h.respondGenerationError(w, visitor, err)
		return
	}

	result, err := llm.ParseStoryResponse(text, visitor.Language)
	if err != nil {
		log.Printf("story: unparsable model output: %v", err)
		h.broadcast("story_failed", visitor, types.CodeMalformedOutput)
		respondRelayError(w, http.StatusBadGateway, types.RelayError{
			Error: "Failed to generate story",
			Code:  types.CodeMalformedOutput,
		})
		return
	}

	if !result.IsPlantImage() {
		message := result.ErrorMessage
		if message == "" {
			message = llm.NotAPlantMessage(visitor.Language)
		}
		h.broadcast("story_rejected", visitor, types.CodeNotAPlant)
		respondRelayError(w, http.StatusBadRequest, types.RelayError{
			Error:   "not_a_plant",
			Code:    types.CodeNotAPlant,
			Message: message,
		})
		return
	}

	h.broadcast("story_generated", visitor, "")
	respondJSON(w, http.StatusOK, result)
}

// respondGenerationError maps provider-side failures to classified
// relay responses.
func (h *StoryHandlers) respondGenerationError(w http.ResponseWriter, visitor types.VisitorInfo, err error) {
	switch {
	case llm.IsThrottle(err):
		h.broadcast("story_failed", visitor, types.CodeRateLimited)
		respondRelayError(w, http.StatusTooManyRequests, types.RelayError{
			Error:   "Rate limited",
			Code:    types.CodeRateLimited,
			Message: busyMessages[visitor.Language],
		})

	case errors.Is(err, llm.ErrNoContent):
		h.broadcast("story_failed", visitor, types.CodeNoContent)
		respondRelayError(w, http.StatusBadGateway, types.RelayError{
			Error: "No response from AI",
			Code:  types.CodeNoContent,
		})

	case errors.Is(err, llm.ErrCircuitOpen):
		h.broadcast("story_failed", visitor, types.CodeProviderError)
		respondRelayError(w, http.StatusServiceUnavailable, types.RelayError{
			Error: "Story service temporarily unavailable",
			Code:  types.CodeProviderError,
		})

	default:
		var pe *llm.ProviderError
		if errors.As(err, &pe) {
			log.Printf("story: provider error %d: %s", pe.StatusCode, pe.Body)
			h.broadcast("story_failed", visitor, types.CodeProviderError)
			respondRelayError(w, pe.StatusCode, types.RelayError{
				Error:   "Failed to generate story",
				Code:    types.CodeProviderError,
				Details: pe.Body,
			})
			return
		}

		log.Printf("story: unexpected generation error: %v", err)
		h.broadcast("story_failed", visitor, types.CodeInternalError)
		respondRelayError(w, http.StatusInternalServerError, types.RelayError{
			Error: "Internal server error",
			Code:  types.CodeInternalError,
		})
	}
}

// broadcast publishes an activity event to the ops hub. Story text and
// images never leave the request path.
func (h *StoryHandlers) broadcast(event string, visitor types.VisitorInfo, code types.ErrorCode) {
	if h.hub == nil {
		return
	}
	h.hub.Broadcast(StoryEvent{
		Type:        event,
		VisitorType: visitor.Type,
		Lang:        visitor.Language,
		Code:        code,
	})
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already sent; nothing left to do but log.
		log.Printf("handlers: failed to encode JSON response: %v", err)
	}
}

// respondRelayError writes a classified error response.
func respondRelayError(w http.ResponseWriter, statusCode int, body types.RelayError) {
	respondJSON(w, statusCode, body)
}
