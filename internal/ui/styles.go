package ui

import "github.com/charmbracelet/lipgloss"

// Festival brand palette.
var (
	ColorForest = lipgloss.Color("#2C4A24")
	ColorLeaf   = lipgloss.Color("#4F6E43")
	ColorSand   = lipgloss.Color("#D1A980")
	ColorCream  = lipgloss.Color("#F5EEE0")
	ColorError  = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles used across the kiosk screens.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Card     lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Button   lipgloss.Style
	Selected lipgloss.Style
	Stage    lipgloss.Style
	StageOn  lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds the default festival styling.
func NewStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForest).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(ColorSand),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSand).
			Padding(1, 2).
			MarginTop(1),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorLeaf),
		Value: lipgloss.NewStyle().
			Foreground(ColorForest),
		Button: lipgloss.NewStyle().
			Foreground(ColorCream).
			Background(ColorForest).
			Padding(0, 2),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCream).
			Background(ColorLeaf).
			Padding(0, 1),
		Stage: lipgloss.NewStyle().
			Foreground(ColorSand).
			Padding(0, 1),
		StageOn: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCream).
			Background(ColorLeaf).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError),
		Help: lipgloss.NewStyle().
			Faint(true).
			Foreground(ColorLeaf).
			MarginTop(1),
	}
}
