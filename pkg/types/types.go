// Package types defines the shared data model for the Mahkah festival
// experience: visitor identity, AI story results, and saved plant memories.
package types

// VisitorType describes which audience a story is written for.
// The tone of the generated story varies per type.
type VisitorType string

const (
	VisitorChild   VisitorType = "child"
	VisitorFamily  VisitorType = "family"
	VisitorTourist VisitorType = "tourist"
)

// ValidVisitorTypes contains all valid visitor type values.
var ValidVisitorTypes = []VisitorType{VisitorChild, VisitorFamily, VisitorTourist}

// IsValidVisitorType checks if the given value is a known visitor type.
func IsValidVisitorType(v VisitorType) bool {
	for _, t := range ValidVisitorTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Language is the UI and story language.
type Language string

const (
	LangArabic  Language = "ar"
	LangEnglish Language = "en"
)

// IsValidLanguage checks if the given value is a supported language.
func IsValidLanguage(l Language) bool {
	return l == LangArabic || l == LangEnglish
}

// PlantStatus is the growth-tracker lifecycle of a saved plant memory.
type PlantStatus string

const (
	StatusSeed  PlantStatus = "seed"
	StatusGrow  PlantStatus = "grow"
	StatusBloom PlantStatus = "bloom"
	StatusFruit PlantStatus = "fruit"
)

// ValidPlantStatuses lists the lifecycle stages in order.
var ValidPlantStatuses = []PlantStatus{StatusSeed, StatusGrow, StatusBloom, StatusFruit}

// IsValidPlantStatus checks if the given value is a known plant status.
func IsValidPlantStatus(s PlantStatus) bool {
	return StatusRank(s) >= 0
}

// StatusRank returns the position of a status in the lifecycle
// (seed=0 … fruit=3), or -1 for an unknown status. The store does not
// enforce lifecycle order; the rank exists for display purposes only.
func StatusRank(s PlantStatus) int {
	for i, v := range ValidPlantStatuses {
		if s == v {
			return i
		}
	}
	return -1
}
