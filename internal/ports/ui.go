// Package ports define the UI interface for view abstraction.
// This interface allows the presenter to update the UI without depending on Fyne directly.
package ports

import (
	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// UI is the interface for the user interface layer.
// This abstracts the Fyne UI implementation and allows for testing without a real UI.
//
// The presenter layer receives events from the event bus and calls these
// methods to update the UI accordingly.
//
// Thread-safety: All methods must be safe to call from any goroutine; the
// Fyne implementation marshals updates onto the UI thread.
type UI interface {
	// Display update methods

	// SetTrackInfo updates the displayed track information.
	SetTrackInfo(track domain.Track)

	// SetProgress updates the progress display.
	// position and duration are in seconds.
	SetProgress(position, duration float64)

	// Playback state update methods

	// SetPlayState updates the play/pause button state.
	SetPlayState(playing bool)

	// Visualizer state update methods

	// SetActiveMode highlights the active visual mode in the mode selector.
	SetActiveMode(mode domain.VisualMode)

	// SetActiveColor pushes a new theme color target into the visualizer.
	SetActiveColor(color domain.RGB)

	// Notification methods

	// ShowError displays an error dialog to the user.
	ShowError(title, message string)

	// Lifecycle methods

	// Run starts the UI event loop.
	// This is a blocking call that runs until the application quits.
	Run() error

	// Quit closes the application.
	Quit()
}
