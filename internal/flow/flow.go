// Package flow defines the kiosk's screen flow as an explicit state
// machine. The UI layer renders screens; this package owns which
// transitions are legal.
package flow

import (
	"fmt"

	"github.com/alhariq/mahkah/pkg/types"
)

// Screen identifies one kiosk screen.
type Screen int

const (
	ScreenSplash Screen = iota
	ScreenSetup
	ScreenUpload
	ScreenLoading
	ScreenStory
	ScreenLibrary
	ScreenDetails
)

var screenNames = map[Screen]string{
	ScreenSplash:  "splash",
	ScreenSetup:   "setup",
	ScreenUpload:  "upload",
	ScreenLoading: "loading",
	ScreenStory:   "story",
	ScreenLibrary: "library",
	ScreenDetails: "details",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return fmt.Sprintf("screen(%d)", int(s))
}

// Event is a kiosk flow event. Implementations are the Event* types
// below.
type Event interface {
	flowEvent()
}

// EventStart leaves the splash screen.
type EventStart struct{}

// EventSetupComplete carries the visitor profile out of setup.
type EventSetupComplete struct {
	Visitor types.VisitorInfo
}

// EventUploadSubmit starts story generation for a captured photo.
type EventUploadSubmit struct{}

// EventGenerationSucceeded moves from loading to the story screen.
type EventGenerationSucceeded struct{}

// EventGenerationFailed returns from loading to upload; the UI shows
// the localized failure message there.
type EventGenerationFailed struct{}

// EventStorySaved moves to the library after the story is kept.
type EventStorySaved struct{}

// EventLibraryOpen opens the plant memory library.
type EventLibraryOpen struct{}

// EventLibrarySelect opens one saved memory.
type EventLibrarySelect struct {
	MemoryID string
}

// EventBack returns to the previous screen in the flow.
type EventBack struct{}

// EventHome returns to the upload screen from anywhere idle.
type EventHome struct{}

func (EventStart) flowEvent()               {}
func (EventSetupComplete) flowEvent()       {}
func (EventUploadSubmit) flowEvent()        {}
func (EventGenerationSucceeded) flowEvent() {}
func (EventGenerationFailed) flowEvent()    {}
func (EventStorySaved) flowEvent()          {}
func (EventLibraryOpen) flowEvent()         {}
func (EventLibrarySelect) flowEvent()       {}
func (EventBack) flowEvent()                {}
func (EventHome) flowEvent()                {}

// ErrInvalidTransition reports an event that is not legal on the
// current screen.
type ErrInvalidTransition struct {
	From  Screen
	Event Event
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("flow: no transition from %s on %T", e.From, e.Event)
}

// Next returns the screen that follows the given event. Events that
// are not legal on the current screen leave it unchanged and return
// ErrInvalidTransition. The loading screen is the only suspension
// point; it is reachable solely through EventUploadSubmit and left
// solely through a generation outcome.
func Next(from Screen, event Event) (Screen, error) {
	switch from {
	case ScreenSplash:
		if _, ok := event.(EventStart); ok {
			return ScreenSetup, nil
		}

	case ScreenSetup:
		if _, ok := event.(EventSetupComplete); ok {
			return ScreenUpload, nil
		}

	case ScreenUpload:
		switch event.(type) {
		case EventUploadSubmit:
			return ScreenLoading, nil
		case EventLibraryOpen:
			return ScreenLibrary, nil
		case EventBack:
			return ScreenSetup, nil
		case EventHome:
			return ScreenUpload, nil
		}

	case ScreenLoading:
		switch event.(type) {
		case EventGenerationSucceeded:
			return ScreenStory, nil
		case EventGenerationFailed:
			return ScreenUpload, nil
		}

	case ScreenStory:
		switch event.(type) {
		case EventStorySaved:
			return ScreenLibrary, nil
		case EventHome, EventBack:
			return ScreenUpload, nil
		}

	case ScreenLibrary:
		switch event.(type) {
		case EventLibrarySelect:
			return ScreenDetails, nil
		case EventHome, EventBack:
			return ScreenUpload, nil
		}

	case ScreenDetails:
		switch event.(type) {
		case EventBack:
			return ScreenLibrary, nil
		case EventHome:
			return ScreenUpload, nil
		}
	}

	return from, &ErrInvalidTransition{From: from, Event: event}
}
