package llm

import (
	"testing"

	"github.com/alhariq/mahkah/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestStoryPromptTonePerVisitorType(t *testing.T) {
	tests := []struct {
		visitorType types.VisitorType
		tone        string
	}{
		{types.VisitorChild, "magical, wonder-filled"},
		{types.VisitorFamily, "warm, nostalgic"},
		{types.VisitorTourist, "inspiring, cultural"},
	}
	for _, tt := range tests {
		t.Run(string(tt.visitorType), func(t *testing.T) {
			prompt := StoryPrompt(types.VisitorInfo{
				Name:     "Sara",
				Type:     tt.visitorType,
				Language: types.LangEnglish,
			})
			assert.Contains(t, prompt, tt.tone)
			assert.Contains(t, prompt, "Sara")
		})
	}
}

func TestStoryPromptLanguage(t *testing.T) {
	ar := StoryPrompt(types.VisitorInfo{Name: "Sara", Type: types.VisitorFamily, Language: types.LangArabic})
	assert.Contains(t, ar, "captivating Arabic")
	assert.Contains(t, ar, NotAPlantMessage(types.LangArabic))

	en := StoryPrompt(types.VisitorInfo{Name: "Tom", Type: types.VisitorTourist, Language: types.LangEnglish})
	assert.Contains(t, en, "captivating English")
	assert.Contains(t, en, NotAPlantMessage(types.LangEnglish))
}

func TestStoryPromptDemandsRawJSON(t *testing.T) {
	prompt := StoryPrompt(types.VisitorInfo{Name: "x", Type: types.VisitorChild, Language: types.LangEnglish})
	assert.Contains(t, prompt, "Return ONLY valid JSON, no markdown.")
	assert.Contains(t, prompt, `"is_plant"`)
	assert.Contains(t, prompt, `"seasonal_status_hint"`)
}

func TestNotAPlantMessageFallsBackToArabic(t *testing.T) {
	assert.Equal(t, NotAPlantMessage(types.LangArabic), NotAPlantMessage("xx"))
}
