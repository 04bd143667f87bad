package ui

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alhariq/mahkah/internal/client"
	"github.com/alhariq/mahkah/internal/imaging"
	"github.com/alhariq/mahkah/internal/storage"
	"github.com/alhariq/mahkah/pkg/types"
)

// generateTimeout must cover the relay's full generation budget,
// provider retries included.
const generateTimeout = 3 * time.Minute

// Messages produced by the kiosk commands.
type (
	storyReadyMsg struct {
		result       *types.StoryResult
		imageDataURI string
	}
	storyFailedMsg struct{ err error }
	librarySavedMsg struct{ memory *types.PlantMemory }
	libraryLoadedMsg struct{ memories []types.PlantMemory }
	statusAdvancedMsg struct{ memory *types.PlantMemory }
	errMsg struct{ err error }
)

// generateStoryCmd compresses the photo at path and asks the relay for
// a story.
func generateStoryCmd(generator StoryGenerator, path string, visitor types.VisitorInfo) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return storyFailedMsg{err: err}
		}
		defer f.Close()

		dataURI, err := imaging.Preprocess(f)
		if err != nil {
			return storyFailedMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()

		result, err := generator.Generate(ctx, dataURI, visitor)
		if err != nil {
			return storyFailedMsg{err: err}
		}
		return storyReadyMsg{result: result, imageDataURI: dataURI}
	}
}

// saveMemoryCmd stores the generated story in the plant library.
func saveMemoryCmd(library storage.LibraryStore, visitor types.VisitorInfo, imageDataURI string, result *types.StoryResult, nickname string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		memory, err := library.Save(ctx, visitor, imageDataURI, result, nickname)
		if err != nil {
			return errMsg{err: err}
		}
		return librarySavedMsg{memory: memory}
	}
}

// loadLibraryCmd fetches the saved plant memories, newest first.
func loadLibraryCmd(library storage.LibraryStore) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		memories, err := library.List(ctx)
		if err != nil {
			return errMsg{err: err}
		}
		return libraryLoadedMsg{memories: memories}
	}
}

// advanceStatusCmd sets the growth stage of a saved memory.
func advanceStatusCmd(library storage.LibraryStore, id string, status types.PlantStatus) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		memory, err := library.AdvanceStatus(ctx, id, status)
		if err != nil {
			return errMsg{err: err}
		}
		return statusAdvancedMsg{memory: memory}
	}
}

// errorText maps a generation failure to the localized friendly
// message shown on the upload screen.
func errorText(lang types.Language, err error) string {
	t := tr(lang)

	var storyErr *client.StoryError
	if errors.As(err, &storyErr) {
		// Relay-provided messages are already localized.
		if storyErr.Message != "" {
			return storyErr.Message
		}
		switch storyErr.Kind {
		case client.KindNotAPlant:
			return t.ErrNotAPlant
		case client.KindBusy:
			return t.ErrBusy
		case client.KindTransport:
			return t.ErrOffline
		}
	}
	return t.ErrGeneric
}
