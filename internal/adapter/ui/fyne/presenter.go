// Package fyne provides the Fyne UI adapter.
// It implements the view layer and the presenter that bridges services,
// the visual session and the window.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
	"github.com/tejashwikalptaru/auravis/internal/service"
	"github.com/tejashwikalptaru/auravis/internal/visual"
)

// Presenter implements the Presenter pattern (MVP architecture).
// It coordinates between services, the visual session and the UI.
//
// Responsibilities:
// - Subscribe to events from the event bus
// - Map domain events to UI updates and session state
// - Translate UI commands to service and session calls
//
// Thread-safety: All operations are thread-safe.
type Presenter struct {
	// Dependencies
	logger *slog.Logger

	// Services (injected)
	player *service.PlayerService
	theme  *service.ThemeService

	// Visual session (controlled here, rendered by the view's widget)
	session *visual.Session

	// Event bus for subscriptions
	bus ports.EventBus

	// UI view
	view ports.UI

	mu           sync.RWMutex
	activePreset string
	shutdownOnce sync.Once
}

// NewPresenter creates a presenter and subscribes it to the event bus.
func NewPresenter(
	logger *slog.Logger,
	player *service.PlayerService,
	theme *service.ThemeService,
	session *visual.Session,
	bus ports.EventBus,
	view ports.UI,
) *Presenter {
	p := &Presenter{
		logger:       logger,
		player:       player,
		theme:        theme,
		session:      session,
		bus:          bus,
		view:         view,
		activePreset: visual.PresetNames()[0],
	}

	p.subscribeToEvents()

	return p
}

// subscribeToEvents subscribes to all relevant events from the event bus.
func (p *Presenter) subscribeToEvents() {
	subscriptions := map[domain.EventType]domain.EventHandler{
		domain.EventTrackLoaded:     p.onTrackLoaded,
		domain.EventPlaybackStarted: p.onPlaybackStarted,
		domain.EventPlaybackPaused:  p.onPlaybackPaused,
		domain.EventPlaybackStopped: p.onPlaybackStopped,
		domain.EventTrackProgress:   p.onTrackProgress,
		domain.EventTrackError:      p.onTrackError,

		domain.EventModeChanged:       p.onModeChanged,
		domain.EventThemeColorChanged: p.onThemeColorChanged,
	}

	for eventType, handler := range subscriptions {
		p.bus.Subscribe(eventType, handler)
	}
}

// Event handlers

func (p *Presenter) onTrackLoaded(event domain.Event) {
	e, ok := event.(domain.TrackLoadedEvent)
	if !ok {
		return
	}

	p.view.SetTrackInfo(e.Track)
	p.view.SetProgress(0, e.Track.Duration.Seconds())
}

func (p *Presenter) onPlaybackStarted(domain.Event) {
	p.session.SetPlaying(true)
	p.view.SetPlayState(true)
}

func (p *Presenter) onPlaybackPaused(domain.Event) {
	p.session.SetPlaying(false)
	p.view.SetPlayState(false)
}

func (p *Presenter) onPlaybackStopped(domain.Event) {
	p.session.SetPlaying(false)
	p.view.SetPlayState(false)
	p.view.SetProgress(0, 0)
}

func (p *Presenter) onTrackProgress(event domain.Event) {
	e, ok := event.(domain.TrackProgressEvent)
	if !ok {
		return
	}

	p.view.SetProgress(e.Position.Seconds(), e.Duration.Seconds())
}

func (p *Presenter) onTrackError(event domain.Event) {
	e, ok := event.(domain.TrackErrorEvent)
	if !ok {
		return
	}

	p.logger.Error("track error",
		slog.String("file_path", e.FilePath),
		slog.Any("error", e.Error))
	p.view.ShowError("Playback Error", fmt.Sprintf("%s: %v", e.FilePath, e.Error))
}

func (p *Presenter) onModeChanged(event domain.Event) {
	e, ok := event.(domain.ModeChangedEvent)
	if !ok {
		return
	}

	p.view.SetActiveMode(e.Mode)
}

func (p *Presenter) onThemeColorChanged(event domain.Event) {
	e, ok := event.(domain.ThemeColorChangedEvent)
	if !ok {
		return
	}

	p.session.SetActiveColor(e.Color)
	p.view.SetActiveColor(e.Color)
}

// UI Command handlers (called by the view)

// OnPlayClicked toggles between play and pause.
func (p *Presenter) OnPlayClicked() {
	if err := p.player.Toggle(); err != nil {
		p.logger.Error("play/pause failed", slog.Any("error", err))
		p.view.ShowError("Playback Error", fmt.Sprintf("Failed to toggle playback: %v", err))
	}
}

// OnStopClicked stops playback.
func (p *Presenter) OnStopClicked() {
	if err := p.player.Stop(); err != nil {
		p.logger.Error("stop failed", slog.Any("error", err))
	}
}

// OnMuteClicked toggles mute.
func (p *Presenter) OnMuteClicked() {
	if err := p.player.Mute(!p.player.IsMuted()); err != nil {
		p.logger.Error("mute failed", slog.Any("error", err))
	}
}

// IsMuted reports the current mute state for the view's icon.
func (p *Presenter) IsMuted() bool {
	return p.player.IsMuted()
}

// OnVolumeChanged handles volume slider changes (0-100 scale).
func (p *Presenter) OnVolumeChanged(value float64) {
	if err := p.player.SetVolume(value / 100.0); err != nil {
		p.logger.Error("volume change failed", slog.Any("error", err))
	}
}

// OnSeekRequested handles seek requests from the progress slider, in
// seconds.
func (p *Presenter) OnSeekRequested(seconds float64) {
	position := time.Duration(seconds * float64(time.Second))
	if err := p.player.Seek(position); err != nil {
		p.logger.Error("seek failed", slog.Any("error", err))
	}
}

// OnFileOpened loads the chosen file.
func (p *Presenter) OnFileOpened(filePath string) error {
	return p.player.Open(filePath)
}

// OnColorCycleClicked advances the theme palette immediately instead of
// waiting for the cycle timer.
func (p *Presenter) OnColorCycleClicked() {
	p.theme.Advance()
}

// OnModeSelected switches the visual mode.
func (p *Presenter) OnModeSelected(mode domain.VisualMode) {
	p.session.SetMode(mode)
	p.bus.Publish(domain.NewModeChangedEvent(mode))
}

// OnPresetSelected switches the visual tuning preset.
func (p *Presenter) OnPresetSelected(name string) {
	preset, err := visual.PresetByName(name)
	if err != nil {
		p.logger.Error("unknown preset", slog.String("name", name))
		p.view.ShowError("Preset Error", fmt.Sprintf("Unknown preset %q", name))
		return
	}

	p.mu.Lock()
	p.activePreset = name
	p.mu.Unlock()

	p.session.SetPreset(preset)
	p.bus.Publish(domain.NewPresetChangedEvent(name))
}

// ActivePreset returns the active preset name for the view's selector.
func (p *Presenter) ActivePreset() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.activePreset
}

// Shutdown is idempotent and releases presenter-held resources.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		p.session.Close()
	})
}
