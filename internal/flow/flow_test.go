package flow

import (
	"testing"

	"github.com/alhariq/mahkah/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextLegalTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  Screen
		event Event
		want  Screen
	}{
		{"splash start", ScreenSplash, EventStart{}, ScreenSetup},
		{"setup complete", ScreenSetup, EventSetupComplete{Visitor: types.VisitorInfo{Name: "Sara"}}, ScreenUpload},
		{"upload submit", ScreenUpload, EventUploadSubmit{}, ScreenLoading},
		{"upload open library", ScreenUpload, EventLibraryOpen{}, ScreenLibrary},
		{"upload back to setup", ScreenUpload, EventBack{}, ScreenSetup},
		{"loading success", ScreenLoading, EventGenerationSucceeded{}, ScreenStory},
		{"loading failure returns to upload", ScreenLoading, EventGenerationFailed{}, ScreenUpload},
		{"story saved", ScreenStory, EventStorySaved{}, ScreenLibrary},
		{"story home", ScreenStory, EventHome{}, ScreenUpload},
		{"library select", ScreenLibrary, EventLibrarySelect{MemoryID: "plant:1:abc"}, ScreenDetails},
		{"library home", ScreenLibrary, EventHome{}, ScreenUpload},
		{"details back", ScreenDetails, EventBack{}, ScreenLibrary},
		{"details home", ScreenDetails, EventHome{}, ScreenUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextRejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  Screen
		event Event
	}{
		{"splash cannot submit", ScreenSplash, EventUploadSubmit{}},
		{"setup cannot open library", ScreenSetup, EventLibraryOpen{}},
		{"upload cannot succeed generation", ScreenUpload, EventGenerationSucceeded{}},
		{"loading ignores home", ScreenLoading, EventHome{}},
		{"loading ignores back", ScreenLoading, EventBack{}},
		{"loading cannot resubmit", ScreenLoading, EventUploadSubmit{}},
		{"story cannot select", ScreenStory, EventLibrarySelect{MemoryID: "x"}},
		{"details cannot submit", ScreenDetails, EventUploadSubmit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.event)

			var invalid *ErrInvalidTransition
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.from, got, "an illegal event must not move the screen")
			assert.Equal(t, tt.from, invalid.From)
		})
	}
}

// TestLoadingIsTheOnlySuspensionPoint checks that no screen other than
// upload can reach loading, and loading is left only by a generation
// outcome.
func TestLoadingIsTheOnlySuspensionPoint(t *testing.T) {
	screens := []Screen{ScreenSplash, ScreenSetup, ScreenLoading, ScreenStory, ScreenLibrary, ScreenDetails}
	for _, from := range screens {
		_, err := Next(from, EventUploadSubmit{})
		assert.Error(t, err, "only upload may start generation, not %s", from)
	}

	events := []Event{EventStart{}, EventSetupComplete{}, EventStorySaved{}, EventLibraryOpen{}, EventLibrarySelect{}, EventBack{}, EventHome{}}
	for _, event := range events {
		got, err := Next(ScreenLoading, event)
		assert.Error(t, err, "loading must ignore %T", event)
		assert.Equal(t, ScreenLoading, got)
	}
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "loading", ScreenLoading.String())
	assert.Equal(t, "screen(99)", Screen(99).String())
}
