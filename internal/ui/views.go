package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alhariq/mahkah/internal/flow"
	"github.com/alhariq/mahkah/pkg/types"
)

// View implements tea.Model.
func (m Model) View() string {
	t := tr(m.lang)

	var body string
	switch m.screen {
	case flow.ScreenSplash:
		body = m.viewSplash(t)
	case flow.ScreenSetup:
		body = m.viewSetup(t)
	case flow.ScreenUpload:
		body = m.viewUpload(t)
	case flow.ScreenLoading:
		body = m.viewLoading(t)
	case flow.ScreenStory:
		body = m.viewStory(t)
	case flow.ScreenLibrary:
		body = m.viewLibrary(t)
	case flow.ScreenDetails:
		body = m.viewDetails(t)
	}

	return body + "\n"
}

func (m Model) viewSplash(t uiStrings) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🌿 " + t.Slogan))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(t.Tagline))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Button.Render(t.Start))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter ⏎ · tab: عربي/EN · ctrl+c: " + t.Quit))
	return b.String()
}

func (m Model) viewSetup(t uiStrings) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(t.SetupTitle))
	b.WriteString("\n")
	b.WriteString(m.styles.Label.Render(t.NamePrompt))
	b.WriteString("\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(t.TypePrompt))
	b.WriteString("\n")

	var choices []string
	for i, vt := range visitorTypeOrder {
		label := t.VisitorTypes[vt]
		if i == m.typeIndex {
			choices = append(choices, m.styles.Selected.Render(label))
		} else {
			choices = append(choices, m.styles.Stage.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, choices...))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("←/→ · enter: " + t.Next))
	return b.String()
}

func (m Model) viewUpload(t uiStrings) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📷 " + t.UploadTitle))
	b.WriteString("\n")
	if m.errText != "" {
		b.WriteString(m.styles.Error.Render(m.errText))
		b.WriteString("\n\n")
	}
	b.WriteString(m.styles.Label.Render(t.UploadHint))
	b.WriteString("\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: " + t.CreateStory + " · tab: " + t.Library + " · esc: " + t.Back))
	return b.String()
}

func (m Model) viewLoading(t uiStrings) string {
	return m.spinner.View() + " " + m.styles.Subtitle.Render(t.Generating)
}

func (m Model) viewStory(t uiStrings) string {
	if m.story == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.story.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Card.Render(m.story.Story))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("💡 " + t.FunFact))
	b.WriteString("\n")
	b.WriteString(m.styles.Value.Render(m.story.FunFact))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("🤔 " + t.Question))
	b.WriteString("\n")
	b.WriteString(m.styles.Value.Render(m.story.Question))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(t.Nickname))
	b.WriteString("\n")
	b.WriteString(m.nicknameInput.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: " + t.SavePlant + " · esc: " + t.Home))
	return b.String()
}

func (m Model) viewLibrary(t uiStrings) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("📚 " + t.Library))
	b.WriteString("\n")

	if len(m.memories) == 0 {
		b.WriteString(m.styles.Subtitle.Render(t.NoPlants))
	} else {
		for i, memory := range m.memories {
			line := fmt.Sprintf("%s · %s", memory.PlantNickname, t.Statuses[memory.Status])
			if i == m.selected {
				b.WriteString(m.styles.Selected.Render("▸ " + line))
			} else {
				b.WriteString(m.styles.Value.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}
	b.WriteString(m.styles.Help.Render("↑/↓ · enter ⏎ · esc: " + t.Home))
	return b.String()
}

func (m Model) viewDetails(t uiStrings) string {
	if m.current == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("🌱 " + m.current.PlantNickname))
	b.WriteString("\n")
	b.WriteString(m.styles.Card.Render(m.current.Story))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(t.Status))
	b.WriteString("\n")
	b.WriteString(m.viewStatusTracker(t))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("1-4: " + t.UpdateStatus + " · esc: " + t.Back + " · enter: " + t.Home))
	return b.String()
}

// viewStatusTracker renders the seed → fruit tracker. Stages up to and
// including the current one are highlighted.
func (m Model) viewStatusTracker(t uiStrings) string {
	rank := types.StatusRank(m.current.Status)

	var stages []string
	for i, status := range types.ValidPlantStatuses {
		label := fmt.Sprintf("%d %s", i+1, t.Statuses[status])
		if i <= rank {
			stages = append(stages, m.styles.StageOn.Render(label))
		} else {
			stages = append(stages, m.styles.Stage.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, stages...)
}
