package types

// StoryResult is the structured output of one story generation.
// It mirrors the JSON shape the model is instructed to produce.
//
// IsPlant is a pointer because the model sometimes omits the key
// entirely; an absent key means "this is a plant".
type StoryResult struct {
	IsPlant            *bool  `json:"is_plant,omitempty"`
	ErrorMessage       string `json:"error_message,omitempty"`
	Title              string `json:"title"`
	Story              string `json:"story"`
	FunFact            string `json:"fun_fact"`
	Question           string `json:"question"`
	SuggestedPlantName string `json:"suggested_plant_name"`
	SeasonalStatusHint string `json:"seasonal_status_hint"`
}

// IsPlantImage reports whether the photographed subject was recognized
// as a plant. An absent is_plant key defaults to true.
func (r *StoryResult) IsPlantImage() bool {
	return r.IsPlant == nil || *r.IsPlant
}

// storyPlaceholders holds the fixed per-language backfill strings for
// narrative fields the model left empty.
var storyPlaceholders = map[Language]StoryResult{
	LangArabic: {
		Title:              "نبتة جميلة",
		Story:              "هذه نبتة رائعة تنمو في طبيعتنا الخلابة.",
		FunFact:            "النباتات تساهم في تنقية الهواء وإنتاج الأكسجين.",
		Question:           "هل تعرف اسم هذه النبتة؟",
		SuggestedPlantName: "نبتة الطبيعة",
		SeasonalStatusHint: "موسم النمو",
	},
	LangEnglish: {
		Title:              "A Lovely Plant",
		Story:              "What a wonderful plant, growing in our beautiful nature!",
		FunFact:            "Plants purify the air and produce the oxygen we breathe.",
		Question:           "Do you know the name of this plant?",
		SuggestedPlantName: "Nature's Plant",
		SeasonalStatusHint: "Growing season",
	},
}

// ApplyDefaults backfills every empty narrative field with a fixed
// localized placeholder and resolves an absent is_plant key to true.
// Negative results (is_plant false) are left untouched: there the only
// meaningful field is ErrorMessage.
func (r *StoryResult) ApplyDefaults(lang Language) {
	if r.IsPlant == nil {
		t := true
		r.IsPlant = &t
	}
	if !*r.IsPlant {
		return
	}

	ph, ok := storyPlaceholders[lang]
	if !ok {
		ph = storyPlaceholders[LangArabic]
	}
	if r.Title == "" {
		r.Title = ph.Title
	}
	if r.Story == "" {
		r.Story = ph.Story
	}
	if r.FunFact == "" {
		r.FunFact = ph.FunFact
	}
	if r.Question == "" {
		r.Question = ph.Question
	}
	if r.SuggestedPlantName == "" {
		r.SuggestedPlantName = ph.SuggestedPlantName
	}
	if r.SeasonalStatusHint == "" {
		r.SeasonalStatusHint = ph.SeasonalStatusHint
	}
}
