// Package llm provides the Gemini story generation stack: a multimodal
// provider client with throttle retry and circuit breaker protection,
// strict JSON-only prompt templates, and a defensive response parser
// that repairs truncated model output.
package llm

import (
	"fmt"

	"github.com/alhariq/mahkah/pkg/types"
)

// notAPlantMessages are the fixed localized messages baked into the
// prompt for the negative-result shape, and reused by the relay when
// the model leaves error_message empty.
var notAPlantMessages = map[types.Language]string{
	types.LangArabic:  "عذراً، هذه الصورة لا تحتوي على نبتة! 🌱 يرجى تصوير نبتة أو شجرة.",
	types.LangEnglish: "Sorry, this image does not contain a plant! 🌱 Please photograph a plant or tree.",
}

// NotAPlantMessage returns the localized not-a-plant message.
func NotAPlantMessage(lang types.Language) string {
	if msg, ok := notAPlantMessages[lang]; ok {
		return msg
	}
	return notAPlantMessages[types.LangArabic]
}

// storyTones maps visitor type to the narrative style instruction.
var storyTones = map[types.VisitorType]string{
	types.VisitorChild:   "magical, wonder-filled",
	types.VisitorFamily:  "warm, nostalgic",
	types.VisitorTourist: "inspiring, cultural",
}

// StoryPrompt builds the festival story prompt for one visitor.
// The model is asked to first classify the image as plant or not, then
// either return the fixed negative-result shape or a full story JSON
// tailored to the visitor's type and language. Output is instructed to
// be raw JSON only.
func StoryPrompt(visitor types.VisitorInfo) string {
	storyLang := "captivating English"
	nicknameLang := "English"
	if visitor.Language == types.LangArabic {
		storyLang = "captivating Arabic"
		nicknameLang = "Arabic"
	}

	return fmt.Sprintf(`You are a plant expert at Al-Hariq Agri-Tourism Festival in Saudi Arabia.

STEP 1: Analyze the image. Is it a PLANT (tree, flower, herb, vegetable, fruit, shrub, cactus, etc.)?

If NOT a plant (person, animal, building, object, food, etc.):
Return JSON: {"is_plant": false, "error_message": %q, "title": "", "story": "", "fun_fact": "", "question": "", "suggested_plant_name": "", "seasonal_status_hint": ""}

If YES a plant:
Create a %s story (100-150 words) for %s, a %s.

Return JSON:
{
  "is_plant": true,
  "title": "Engaging title",
  "story": "Story connecting plant to Saudi agriculture/Al-Hariq region if citrus, otherwise general agricultural wisdom",
  "fun_fact": "Interesting fact about this plant type",
  "question": "Thought-provoking question",
  "suggested_plant_name": "Creative nickname in %s",
  "seasonal_status_hint": "Season/growth info"
}

Style: %s.
Return ONLY valid JSON, no markdown.`,
		NotAPlantMessage(visitor.Language),
		storyLang,
		visitor.Name,
		visitor.Type,
		nicknameLang,
		storyTones[visitor.Type],
	)
}
