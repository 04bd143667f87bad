package llm

import "context"

// StoryGenerator is the interface for multimodal story generation.
// Implementations receive the full prompt plus a bare base64 JPEG and
// return the raw model text for the response parser to handle.
type StoryGenerator interface {
	GenerateStory(ctx context.Context, prompt string, imageBase64 string) (string, error)
	GetModel() string
}
