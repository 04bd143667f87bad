package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alhariq/mahkah/internal/flow"
	"github.com/alhariq/mahkah/internal/storage"
	"github.com/alhariq/mahkah/pkg/types"
)

// fakeGenerator returns a canned story.
type fakeGenerator struct {
	result *types.StoryResult
	err    error
}

func (f *fakeGenerator) Generate(ctx context.Context, imageDataURI string, visitor types.VisitorInfo) (*types.StoryResult, error) {
	return f.result, f.err
}

// fakeLibrary is an in-memory storage.LibraryStore.
type fakeLibrary struct {
	memories []types.PlantMemory
}

func (f *fakeLibrary) List(ctx context.Context) ([]types.PlantMemory, error) {
	return f.memories, nil
}

func (f *fakeLibrary) Get(ctx context.Context, id string) (*types.PlantMemory, error) {
	for i := range f.memories {
		if f.memories[i].ID == id {
			return &f.memories[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeLibrary) Save(ctx context.Context, visitor types.VisitorInfo, imageURL string, result *types.StoryResult, nickname string) (*types.PlantMemory, error) {
	memory := types.DraftMemory(visitor, imageURL, *result, nickname)
	memory.ID = "plant:1:test"
	memory.Status = types.StatusSeed
	f.memories = append([]types.PlantMemory{memory}, f.memories...)
	return &memory, nil
}

func (f *fakeLibrary) AdvanceStatus(ctx context.Context, id string, status types.PlantStatus) (*types.PlantMemory, error) {
	for i := range f.memories {
		if f.memories[i].ID == id {
			f.memories[i].Status = status
			return &f.memories[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeLibrary) Close() error { return nil }

func newTestModel() Model {
	gen := &fakeGenerator{result: &types.StoryResult{Title: "Palm", Story: "A story."}}
	return New(gen, &fakeLibrary{}, types.LangArabic)
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeText(m Model, text string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

func TestUpdateWindowSize(t *testing.T) {
	t.Parallel()
	m := newTestModel()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := next.(Model)

	if result.width != 120 || result.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", result.width, result.height)
	}
}

func TestSplashStart(t *testing.T) {
	t.Parallel()
	m := newTestModel()

	next, _ := m.Update(keyMsg(tea.KeyEnter))
	if next.(Model).screen != flow.ScreenSetup {
		t.Errorf("expected setup after start, got %s", next.(Model).screen)
	}
}

func TestSplashLanguageToggle(t *testing.T) {
	t.Parallel()
	m := newTestModel()

	next, _ := m.Update(keyMsg(tea.KeyTab))
	if next.(Model).lang != types.LangEnglish {
		t.Errorf("expected language toggle to en, got %s", next.(Model).lang)
	}
}

func TestSetupRequiresName(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenSetup

	next, _ := m.Update(keyMsg(tea.KeyEnter))
	if next.(Model).screen != flow.ScreenSetup {
		t.Error("setup must not complete without a name")
	}
}

func TestSetupCompletes(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenSetup
	m = typeText(m, "Sara")

	// Cycle to the family visitor type.
	next, _ := m.Update(keyMsg(tea.KeyRight))
	m = next.(Model)

	next, _ = m.Update(keyMsg(tea.KeyEnter))
	result := next.(Model)

	if result.screen != flow.ScreenUpload {
		t.Fatalf("expected upload, got %s", result.screen)
	}
	if result.visitor.Name != "Sara" {
		t.Errorf("expected visitor name Sara, got %q", result.visitor.Name)
	}
	if result.visitor.Type != types.VisitorFamily {
		t.Errorf("expected family visitor, got %s", result.visitor.Type)
	}
	if result.visitor.Language != types.LangArabic {
		t.Errorf("expected ar, got %s", result.visitor.Language)
	}
}

func TestUploadRequiresPath(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenUpload

	next, cmd := m.Update(keyMsg(tea.KeyEnter))
	if next.(Model).screen != flow.ScreenUpload {
		t.Error("upload must not submit without a path")
	}
	if cmd != nil {
		t.Error("no generation command expected without a path")
	}
}

func TestUploadSubmitStartsLoading(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenUpload
	m.pathInput.SetValue("/tmp/plant.jpg")

	next, cmd := m.Update(keyMsg(tea.KeyEnter))
	if next.(Model).screen != flow.ScreenLoading {
		t.Fatalf("expected loading, got %s", next.(Model).screen)
	}
	if cmd == nil {
		t.Error("expected a generation command")
	}
}

func TestUploadOpensLibrary(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenUpload

	next, cmd := m.Update(keyMsg(tea.KeyTab))
	if next.(Model).screen != flow.ScreenLibrary {
		t.Fatalf("expected library, got %s", next.(Model).screen)
	}
	if cmd == nil {
		t.Error("expected a library load command")
	}
}

func TestLoadingIgnoresKeys(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenLoading

	for _, key := range []tea.KeyType{tea.KeyEnter, tea.KeyEsc, tea.KeyTab} {
		next, _ := m.Update(keyMsg(key))
		if next.(Model).screen != flow.ScreenLoading {
			t.Errorf("loading must ignore %v", key)
		}
	}
}

func TestStoryReadyShowsStory(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenLoading

	next, _ := m.Update(storyReadyMsg{
		result:       &types.StoryResult{Title: "Palm", Story: "A story."},
		imageDataURI: "data:image/jpeg;base64,abc",
	})
	result := next.(Model)

	if result.screen != flow.ScreenStory {
		t.Fatalf("expected story screen, got %s", result.screen)
	}
	if result.story == nil || result.story.Title != "Palm" {
		t.Error("expected the story to be held by the model")
	}
}

func TestStoryFailedReturnsToUpload(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenLoading

	next, _ := m.Update(storyFailedMsg{err: context.DeadlineExceeded})
	result := next.(Model)

	if result.screen != flow.ScreenUpload {
		t.Fatalf("expected upload after failure, got %s", result.screen)
	}
	if result.errText == "" {
		t.Error("expected a localized failure message")
	}
}

func TestStorySavedOpensLibrary(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenStory
	m.story = &types.StoryResult{Title: "Palm", Story: "A story."}

	next, cmd := m.Update(librarySavedMsg{memory: &types.PlantMemory{ID: "plant:1:test"}})
	result := next.(Model)

	if result.screen != flow.ScreenLibrary {
		t.Fatalf("expected library after save, got %s", result.screen)
	}
	if result.story != nil {
		t.Error("the held story must be cleared after saving")
	}
	if cmd == nil {
		t.Error("expected a library reload command")
	}
}

func TestLibrarySelectOpensDetails(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenLibrary

	next, _ := m.Update(libraryLoadedMsg{memories: []types.PlantMemory{
		{ID: "plant:2:b", PlantNickname: "نخلة", Status: types.StatusGrow},
		{ID: "plant:1:a", PlantNickname: "ليمونة", Status: types.StatusSeed},
	}})
	m = next.(Model)

	next, _ = m.Update(keyMsg(tea.KeyDown))
	m = next.(Model)
	next, _ = m.Update(keyMsg(tea.KeyEnter))
	result := next.(Model)

	if result.screen != flow.ScreenDetails {
		t.Fatalf("expected details, got %s", result.screen)
	}
	if result.current == nil || result.current.ID != "plant:1:a" {
		t.Error("expected the second memory to be selected")
	}
}

func TestDetailsAdvanceStatus(t *testing.T) {
	t.Parallel()
	m := newTestModel()
	m.screen = flow.ScreenDetails
	m.current = &types.PlantMemory{ID: "plant:1:test", Status: types.StatusSeed}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if cmd == nil {
		t.Fatal("expected a status update command")
	}

	next, _ := m.Update(statusAdvancedMsg{memory: &types.PlantMemory{ID: "plant:1:test", Status: types.StatusBloom}})
	if next.(Model).current.Status != types.StatusBloom {
		t.Error("expected the shown memory to carry the new status")
	}
}

func TestViewNeverPanics(t *testing.T) {
	t.Parallel()
	m := newTestModel()

	screens := []flow.Screen{
		flow.ScreenSplash, flow.ScreenSetup, flow.ScreenUpload,
		flow.ScreenLoading, flow.ScreenStory, flow.ScreenLibrary, flow.ScreenDetails,
	}
	for _, screen := range screens {
		m.screen = screen
		if m.View() == "" {
			// Story and details render empty without held state; that is
			// fine, they are unreachable in that state via the flow.
			continue
		}
	}
}

func TestCtrlCQuits(t *testing.T) {
	t.Parallel()
	m := newTestModel()

	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("expected the quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Error("expected tea.Quit")
	}
}
