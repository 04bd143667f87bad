package types

import "time"

// PlantMemory is one saved plant story with its growth tracker.
// JSON field names match the persisted library format.
type PlantMemory struct {
	ID            string      `json:"id"`            // Unique identifier (format: plant:<unix-ms>:<short-uuid>)
	VisitorName   string      `json:"visitorName"`   // Copied from VisitorInfo at save time
	VisitorType   VisitorType `json:"visitorType"`   // Copied from VisitorInfo at save time
	Language      Language    `json:"language"`      // Story language
	ImageURL      string      `json:"imageUrl"`      // Compressed photo as a data URI
	Title         string      `json:"title"`         // Story title
	Story         string      `json:"story"`         // Story body
	FunFact       string      `json:"funFact"`       // Fun fact from the story result
	Question      string      `json:"question"`      // Reflective question from the story result
	PlantNickname string      `json:"plantNickname"` // Visitor-chosen or model-suggested nickname
	Status        PlantStatus `json:"status"`        // Growth tracker status (seed → fruit)
	CreatedAt     time.Time   `json:"createdAt"`     // When the memory was saved
	UpdatedAt     time.Time   `json:"updatedAt"`     // Last status change
}

// DraftMemory assembles an unsaved plant memory from a story result and
// the visitor context. An explicit nickname wins over the model's
// suggestion; an empty nickname falls back to it. The store assigns ID,
// timestamps, and the initial seed status on save.
func DraftMemory(visitor VisitorInfo, imageURL string, res StoryResult, nickname string) PlantMemory {
	if nickname == "" {
		nickname = res.SuggestedPlantName
	}
	return PlantMemory{
		VisitorName:   visitor.Name,
		VisitorType:   visitor.Type,
		Language:      visitor.Language,
		ImageURL:      imageURL,
		Title:         res.Title,
		Story:         res.Story,
		FunFact:       res.FunFact,
		Question:      res.Question,
		PlantNickname: nickname,
	}
}
