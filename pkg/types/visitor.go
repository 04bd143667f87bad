package types

import "errors"

// VisitorInfo identifies the current visitor for one session.
// It is created once at setup and never persisted on its own; saved
// plant memories carry a copy of the relevant fields.
type VisitorInfo struct {
	Name     string      `json:"name"`
	Type     VisitorType `json:"type"`
	Language Language    `json:"language"`
}

// Validation errors returned by VisitorInfo.Validate.
var (
	ErrEmptyVisitorName   = errors.New("visitor name must not be empty")
	ErrInvalidVisitorType = errors.New("invalid visitor type")
	ErrInvalidLanguage    = errors.New("invalid language")
)

// Validate checks that all visitor fields are well-formed.
func (v VisitorInfo) Validate() error {
	if v.Name == "" {
		return ErrEmptyVisitorName
	}
	if !IsValidVisitorType(v.Type) {
		return ErrInvalidVisitorType
	}
	if !IsValidLanguage(v.Language) {
		return ErrInvalidLanguage
	}
	return nil
}
