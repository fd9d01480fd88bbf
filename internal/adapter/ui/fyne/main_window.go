package fyne

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"

	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/auravis/internal/adapter/ui/fyne/widgets"
	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
	"github.com/tejashwikalptaru/auravis/internal/visual"
)

// Window defaults.
const (
	AppName = "AuraVis"
	Width   = 960
	Height  = 640
)

// MainWindow is the main UI window implementing the UI port.
// It handles all rendering and user interactions.
//
// The MainWindow follows the MVP pattern:
// - It's a "dumb view" that just displays data
// - All business logic is in the Presenter
// - User interactions are forwarded to the Presenter
type MainWindow struct {
	logger *slog.Logger
	app    fyneapp.App
	window fyneapp.Window

	// UI components
	playButton     *widget.Button
	stopButton     *widget.Button
	muteButton     *widget.Button
	paletteButton  *widget.Button
	songInfo       *widget.Label
	currentTime    *widget.Label
	endTime        *widget.Label
	progressSlider *widget.Slider
	volumeSlider   *widget.Slider
	modeSelect     *widget.Select
	presetSelect   *widget.Select
	accentBar      *canvas.Rectangle
	visualizer     *widgets.Visualizer

	// State
	seeking bool

	// Presenter (set after construction)
	presenter *Presenter
}

// NewMainWindow creates the main window hosting the given visual session.
func NewMainWindow(logger *slog.Logger, app fyneapp.App, session *visual.Session) *MainWindow {
	w := &MainWindow{
		logger: logger,
		app:    app,
	}

	w.window = app.NewWindow(AppName)
	w.visualizer = widgets.NewVisualizer(session)

	w.buildUI()

	w.window.Resize(fyneapp.Size{Width: Width, Height: Height})

	return w
}

// SetPresenter connects the presenter to this view.
// This must be called before Run.
func (w *MainWindow) SetPresenter(presenter *Presenter) {
	w.presenter = presenter
	w.wirePresenterHandlers()
}

// buildUI constructs the UI components.
func (w *MainWindow) buildUI() {
	// Control buttons
	w.playButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), nil)
	w.stopButton = widget.NewButtonWithIcon("", theme.MediaStopIcon(), nil)
	w.muteButton = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), nil)
	w.paletteButton = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), nil)

	// Song info label
	w.songInfo = widget.NewLabel("No track loaded")
	w.songInfo.Truncation = fyneapp.TextTruncateEllipsis
	w.songInfo.TextStyle = fyneapp.TextStyle{Bold: true}

	// Mode and preset selectors
	modeNames := make([]string, 0, len(domain.AllModes()))
	for _, mode := range domain.AllModes() {
		modeNames = append(modeNames, mode.String())
	}
	w.modeSelect = widget.NewSelect(modeNames, nil)
	w.modeSelect.SetSelectedIndex(0)

	w.presetSelect = widget.NewSelect(visual.PresetNames(), nil)
	w.presetSelect.SetSelectedIndex(0)

	// Volume slider
	w.volumeSlider = widget.NewSlider(0, 100)
	w.volumeSlider.Value = 80
	volIcon := widget.NewIcon(theme.VolumeUpIcon())
	volumeHolder := container.NewBorder(nil, nil, volIcon, nil, w.volumeSlider)

	// Accent swatch showing the active theme color.
	w.accentBar = canvas.NewRectangle(color.RGBA{R: 92, G: 143, B: 252, A: 255})
	w.accentBar.SetMinSize(fyneapp.Size{Width: 8, Height: 8})

	// Button row
	buttonsHBox := container.NewHBox(
		w.playButton, w.stopButton, w.muteButton, w.paletteButton,
		w.modeSelect, w.presetSelect,
	)
	buttonsHolder := container.NewBorder(nil, nil, buttonsHBox, volumeHolder, w.songInfo)

	// Progress row
	w.progressSlider = widget.NewSlider(0, 100)
	w.currentTime = widget.NewLabel("00:00")
	w.endTime = widget.NewLabel("00:00")
	sliderHolder := container.NewBorder(nil, nil, w.currentTime, w.endTime, w.progressSlider)

	// Main layout: visualizer fills everything above the control strip.
	controls := container.NewVBox(w.accentBar, buttonsHolder, sliderHolder)
	w.window.SetContent(container.NewBorder(nil, controls, nil, nil, w.visualizer))

	w.window.SetMainMenu(fyneapp.NewMainMenu(w.createMenu()...))
}

// wirePresenterHandlers connects UI events to presenter handlers.
func (w *MainWindow) wirePresenterHandlers() {
	if w.presenter == nil {
		return
	}

	w.playButton.OnTapped = func() {
		w.presenter.OnPlayClicked()
	}

	w.stopButton.OnTapped = func() {
		w.presenter.OnStopClicked()
	}

	w.muteButton.OnTapped = func() {
		w.presenter.OnMuteClicked()
		if w.presenter.IsMuted() {
			w.muteButton.SetIcon(theme.VolumeMuteIcon())
		} else {
			w.muteButton.SetIcon(theme.VolumeUpIcon())
		}
	}

	w.paletteButton.OnTapped = func() {
		w.presenter.OnColorCycleClicked()
	}

	w.volumeSlider.OnChanged = func(value float64) {
		w.presenter.OnVolumeChanged(value)
	}

	w.modeSelect.OnChanged = func(name string) {
		for _, mode := range domain.AllModes() {
			if mode.String() == name {
				w.presenter.OnModeSelected(mode)
				return
			}
		}
	}

	w.presetSelect.OnChanged = func(name string) {
		w.presenter.OnPresetSelected(name)
	}

	// Seek on drag end only, so progress updates don't fight the user.
	w.progressSlider.OnChangeEnded = func(value float64) {
		w.seeking = false
		w.presenter.OnSeekRequested(value)
	}
	w.progressSlider.OnChanged = func(float64) {
		w.seeking = true
	}
}

// createMenu creates the application menu.
func (w *MainWindow) createMenu() []*fyneapp.Menu {
	openFile := fyneapp.NewMenuItem("Open", func() {
		w.handleOpenFile()
	})

	exitMenu := fyneapp.NewMenuItem("Exit", func() {
		w.Quit()
	})

	fileMenu := fyneapp.NewMenu("File", openFile, fyneapp.NewMenuItemSeparator(), exitMenu)

	return []*fyneapp.Menu{fileMenu}
}

// handleOpenFile handles the "Open" menu action.
func (w *MainWindow) handleOpenFile() {
	if w.presenter == nil {
		return
	}

	fileDialog := NewFileDialog(w.window, func(filePath string) {
		if err := w.presenter.OnFileOpened(filePath); err != nil {
			w.ShowError("Open Failed", fmt.Sprintf("Failed to open file: %v", err))
		}
	}, w.logger)
	fileDialog.Show()
}

// UI port implementation

// SetTrackInfo updates the displayed track information.
func (w *MainWindow) SetTrackInfo(track domain.Track) {
	var text string
	switch {
	case track.Artist != "" && track.Title != "":
		text = fmt.Sprintf("%s - %s", track.Artist, track.Title)
	case track.Title != "":
		text = track.Title
	default:
		text = "No track loaded"
	}

	w.songInfo.SetText(text)
	w.window.SetTitle(fmt.Sprintf("%s - %s", AppName, text))
}

// SetProgress updates the time labels and progress slider.
func (w *MainWindow) SetProgress(position, duration float64) {
	w.currentTime.SetText(formatTime(position))
	w.endTime.SetText(formatTime(duration))

	if duration > 0 && !w.seeking {
		w.progressSlider.Max = duration
		w.progressSlider.Value = position
		w.progressSlider.Refresh()
	}
}

// SetPlayState updates the play/pause button icon.
func (w *MainWindow) SetPlayState(playing bool) {
	if playing {
		w.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		w.playButton.SetIcon(theme.MediaPlayIcon())
	}
	w.playButton.Refresh()
}

// SetActiveMode highlights the active mode in the selector.
func (w *MainWindow) SetActiveMode(mode domain.VisualMode) {
	if w.modeSelect.Selected != mode.String() {
		w.modeSelect.SetSelected(mode.String())
	}
}

// SetActiveColor recolors the accent bar to the new theme color.
func (w *MainWindow) SetActiveColor(c domain.RGB) {
	w.accentBar.FillColor = color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
	w.accentBar.Refresh()
}

// ShowError displays an error dialog.
func (w *MainWindow) ShowError(title, message string) {
	w.app.SendNotification(fyneapp.NewNotification(title, message))
	w.logger.Warn("ui error shown",
		slog.String("title", title),
		slog.String("message", message))
}

// Run shows the window and blocks until the application quits.
func (w *MainWindow) Run() error {
	w.visualizer.Start()
	w.window.ShowAndRun()
	return nil
}

// Quit stops the visualizer refresh and closes the application.
func (w *MainWindow) Quit() {
	w.visualizer.Stop()
	w.app.Quit()
}

// formatTime renders seconds as mm:ss.
func formatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", int(seconds)/60, int(math.Mod(seconds, 60)))
}

// Verify UI port implementation
var _ ports.UI = (*MainWindow)(nil)
