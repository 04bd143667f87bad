package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidVisitorType(t *testing.T) {
	for _, v := range ValidVisitorTypes {
		assert.True(t, IsValidVisitorType(v), "expected %q to be valid", v)
	}
	assert.False(t, IsValidVisitorType("adult"))
	assert.False(t, IsValidVisitorType(""))
}

func TestIsValidLanguage(t *testing.T) {
	assert.True(t, IsValidLanguage(LangArabic))
	assert.True(t, IsValidLanguage(LangEnglish))
	assert.False(t, IsValidLanguage("fr"))
	assert.False(t, IsValidLanguage(""))
}

func TestStatusRank(t *testing.T) {
	tests := []struct {
		status PlantStatus
		rank   int
	}{
		{StatusSeed, 0},
		{StatusGrow, 1},
		{StatusBloom, 2},
		{StatusFruit, 3},
		{"wilted", -1},
		{"", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.rank, StatusRank(tt.status), "status %q", tt.status)
	}
}

func TestVisitorInfoValidate(t *testing.T) {
	valid := VisitorInfo{Name: "Sara", Type: VisitorFamily, Language: LangArabic}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		visitor VisitorInfo
		wantErr error
	}{
		{"empty name", VisitorInfo{Type: VisitorChild, Language: LangEnglish}, ErrEmptyVisitorName},
		{"bad type", VisitorInfo{Name: "x", Type: "robot", Language: LangEnglish}, ErrInvalidVisitorType},
		{"bad language", VisitorInfo{Name: "x", Type: VisitorChild, Language: "de"}, ErrInvalidLanguage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.visitor.Validate(), tt.wantErr)
		})
	}
}
