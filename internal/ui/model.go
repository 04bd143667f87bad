// Package ui provides the interactive kiosk interface for the Mahkah
// festival stand. Screens are rendered here; which transitions are
// legal is owned by the flow package.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alhariq/mahkah/internal/flow"
	"github.com/alhariq/mahkah/internal/storage"
	"github.com/alhariq/mahkah/pkg/types"
)

// StoryGenerator produces a story for a captured photo. Satisfied by
// client.StoryClient.
type StoryGenerator interface {
	Generate(ctx context.Context, imageDataURI string, visitor types.VisitorInfo) (*types.StoryResult, error)
}

// visitorTypeOrder fixes the cycling order on the setup screen.
var visitorTypeOrder = []types.VisitorType{
	types.VisitorChild,
	types.VisitorFamily,
	types.VisitorTourist,
}

// Model is the kiosk's Bubble Tea model.
type Model struct {
	generator StoryGenerator
	library   storage.LibraryStore

	screen  flow.Screen
	visitor types.VisitorInfo
	lang    types.Language

	nameInput     textinput.Model
	pathInput     textinput.Model
	nicknameInput textinput.Model
	spinner       spinner.Model
	styles        Styles

	typeIndex int // index into visitorTypeOrder on the setup screen

	imageDataURI string
	story        *types.StoryResult
	memories     []types.PlantMemory
	selected     int
	current      *types.PlantMemory

	errText string
	width   int
	height  int
	err     error
}

// New creates the kiosk model.
func New(generator StoryGenerator, library storage.LibraryStore, defaultLang types.Language) Model {
	if !types.IsValidLanguage(defaultLang) {
		defaultLang = types.LangArabic
	}

	name := textinput.New()
	name.CharLimit = 60
	name.Width = 32
	name.Focus()

	path := textinput.New()
	path.CharLimit = 255
	path.Width = 48

	nickname := textinput.New()
	nickname.CharLimit = 60
	nickname.Width = 32

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		generator:     generator,
		library:       library,
		screen:        flow.ScreenSplash,
		lang:          defaultLang,
		nameInput:     name,
		pathInput:     path,
		nicknameInput: nickname,
		spinner:       sp,
		styles:        NewStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.screen == flow.ScreenLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case storyReadyMsg:
		m.story = msg.result
		m.imageDataURI = msg.imageDataURI
		m.nicknameInput.SetValue("")
		m.nicknameInput.Focus()
		return m.transition(flow.EventGenerationSucceeded{})

	case storyFailedMsg:
		m.errText = errorText(m.lang, msg.err)
		return m.transition(flow.EventGenerationFailed{})

	case librarySavedMsg:
		m.story = nil
		m.imageDataURI = ""
		model, cmd := m.transition(flow.EventStorySaved{})
		return model, tea.Batch(cmd, loadLibraryCmd(m.library))

	case libraryLoadedMsg:
		m.memories = msg.memories
		if m.selected >= len(m.memories) {
			m.selected = 0
		}
		return m, nil

	case statusAdvancedMsg:
		m.current = msg.memory
		return m, loadLibraryCmd(m.library)

	case errMsg:
		m.err = msg.err
		m.errText = tr(m.lang).ErrGeneric
		return m, nil
	}

	return m, nil
}

// transition applies a flow event; illegal events leave the model
// unchanged.
func (m Model) transition(event flow.Event) (Model, tea.Cmd) {
	next, err := flow.Next(m.screen, event)
	if err != nil {
		return m, nil
	}
	m.screen = next
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case flow.ScreenSplash:
		return m.updateSplash(msg)
	case flow.ScreenSetup:
		return m.updateSetup(msg)
	case flow.ScreenUpload:
		return m.updateUpload(msg)
	case flow.ScreenLoading:
		// The loading screen is the flow's only suspension point;
		// nothing but the generation outcome moves it.
		return m, nil
	case flow.ScreenStory:
		return m.updateStory(msg)
	case flow.ScreenLibrary:
		return m.updateLibrary(msg)
	case flow.ScreenDetails:
		return m.updateDetails(msg)
	}
	return m, nil
}

func (m Model) updateSplash(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.nameInput.Focus()
		model, cmd := m.transition(flow.EventStart{})
		return model, cmd
	case tea.KeyTab:
		m.lang = toggleLang(m.lang)
		return m, nil
	}
	return m, nil
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := m.nameInput.Value()
		if name == "" {
			return m, nil
		}
		m.visitor = types.VisitorInfo{
			Name:     name,
			Type:     visitorTypeOrder[m.typeIndex],
			Language: m.lang,
		}
		m.pathInput.Focus()
		m.nameInput.Blur()
		return m.transition(flow.EventSetupComplete{Visitor: m.visitor})

	case tea.KeyLeft:
		m.typeIndex = (m.typeIndex + len(visitorTypeOrder) - 1) % len(visitorTypeOrder)
		return m, nil

	case tea.KeyRight:
		m.typeIndex = (m.typeIndex + 1) % len(visitorTypeOrder)
		return m, nil

	case tea.KeyTab:
		m.lang = toggleLang(m.lang)
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updateUpload(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		path := m.pathInput.Value()
		if path == "" {
			return m, nil
		}
		m.errText = ""
		model, _ := m.transition(flow.EventUploadSubmit{})
		return model, tea.Batch(
			model.spinner.Tick,
			generateStoryCmd(model.generator, path, model.visitor),
		)

	case tea.KeyTab:
		model, cmd := m.transition(flow.EventLibraryOpen{})
		return model, tea.Batch(cmd, loadLibraryCmd(model.library))

	case tea.KeyEsc:
		return m.transition(flow.EventBack{})
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m Model) updateStory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.story == nil {
			return m, nil
		}
		return m, saveMemoryCmd(m.library, m.visitor, m.imageDataURI, m.story, m.nicknameInput.Value())

	case tea.KeyEsc:
		m.story = nil
		m.imageDataURI = ""
		return m.transition(flow.EventHome{})
	}

	var cmd tea.Cmd
	m.nicknameInput, cmd = m.nicknameInput.Update(msg)
	return m, cmd
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case tea.KeyDown:
		if m.selected < len(m.memories)-1 {
			m.selected++
		}
		return m, nil

	case tea.KeyEnter:
		if len(m.memories) == 0 {
			return m, nil
		}
		memory := m.memories[m.selected]
		m.current = &memory
		return m.transition(flow.EventLibrarySelect{MemoryID: memory.ID})

	case tea.KeyEsc:
		return m.transition(flow.EventHome{})
	}
	return m, nil
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.current != nil {
		if status, ok := statusForKey(msg.String()); ok {
			return m, advanceStatusCmd(m.library, m.current.ID, status)
		}
	}

	switch msg.Type {
	case tea.KeyEsc:
		return m.transition(flow.EventBack{})
	case tea.KeyEnter:
		return m.transition(flow.EventHome{})
	}
	return m, nil
}

// statusForKey maps the 1-4 keys to growth stages.
func statusForKey(key string) (types.PlantStatus, bool) {
	switch key {
	case "1":
		return types.StatusSeed, true
	case "2":
		return types.StatusGrow, true
	case "3":
		return types.StatusBloom, true
	case "4":
		return types.StatusFruit, true
	}
	return "", false
}

func toggleLang(lang types.Language) types.Language {
	if lang == types.LangArabic {
		return types.LangEnglish
	}
	return types.LangArabic
}
