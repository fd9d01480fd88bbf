// Package domain defines events for the event-driven architecture.
// Events enable loose coupling between the playback services, the theme
// service and the UI layer.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events
	EventTrackLoaded     EventType = "track.loaded"
	EventPlaybackStarted EventType = "playback.started"
	EventPlaybackPaused  EventType = "playback.paused"
	EventPlaybackStopped EventType = "playback.stopped"
	EventTrackProgress   EventType = "track.progress"
	EventTrackError      EventType = "track.error"

	// Visualizer events
	EventModeChanged   EventType = "visual.mode_changed"
	EventPresetChanged EventType = "visual.preset_changed"

	// Theme events
	EventThemeColorChanged EventType = "theme.color_changed"

	// Volume events
	EventVolumeChanged EventType = "volume.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackLoadedEvent is published when a track is successfully loaded.
type TrackLoadedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e TrackLoadedEvent) Type() EventType {
	return EventTrackLoaded
}

// NewTrackLoadedEvent creates a new TrackLoadedEvent.
func NewTrackLoadedEvent(track Track) TrackLoadedEvent {
	return TrackLoadedEvent{baseEvent: newBaseEvent(), Track: track}
}

// PlaybackStartedEvent is published when playback starts or resumes.
type PlaybackStartedEvent struct {
	baseEvent
	Track Track
}

// Type returns the event type.
func (e PlaybackStartedEvent) Type() EventType {
	return EventPlaybackStarted
}

// NewPlaybackStartedEvent creates a new PlaybackStartedEvent.
func NewPlaybackStartedEvent(track Track) PlaybackStartedEvent {
	return PlaybackStartedEvent{baseEvent: newBaseEvent(), Track: track}
}

// PlaybackPausedEvent is published when playback pauses.
type PlaybackPausedEvent struct {
	baseEvent
	Position time.Duration
}

// Type returns the event type.
func (e PlaybackPausedEvent) Type() EventType {
	return EventPlaybackPaused
}

// NewPlaybackPausedEvent creates a new PlaybackPausedEvent.
func NewPlaybackPausedEvent(position time.Duration) PlaybackPausedEvent {
	return PlaybackPausedEvent{baseEvent: newBaseEvent(), Position: position}
}

// PlaybackStoppedEvent is published when playback stops.
type PlaybackStoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e PlaybackStoppedEvent) Type() EventType {
	return EventPlaybackStopped
}

// NewPlaybackStoppedEvent creates a new PlaybackStoppedEvent.
func NewPlaybackStoppedEvent() PlaybackStoppedEvent {
	return PlaybackStoppedEvent{baseEvent: newBaseEvent()}
}

// TrackProgressEvent is published periodically during playback.
type TrackProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType {
	return EventTrackProgress
}

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(position, duration time.Duration) TrackProgressEvent {
	return TrackProgressEvent{baseEvent: newBaseEvent(), Position: position, Duration: duration}
}

// TrackErrorEvent is published when a track fails to load or play.
type TrackErrorEvent struct {
	baseEvent
	FilePath string
	Error    error
}

// Type returns the event type.
func (e TrackErrorEvent) Type() EventType {
	return EventTrackError
}

// NewTrackErrorEvent creates a new TrackErrorEvent.
func NewTrackErrorEvent(filePath string, err error) TrackErrorEvent {
	return TrackErrorEvent{baseEvent: newBaseEvent(), FilePath: filePath, Error: err}
}

// ModeChangedEvent is published when the active visual mode changes.
type ModeChangedEvent struct {
	baseEvent
	Mode VisualMode
}

// Type returns the event type.
func (e ModeChangedEvent) Type() EventType {
	return EventModeChanged
}

// NewModeChangedEvent creates a new ModeChangedEvent.
func NewModeChangedEvent(mode VisualMode) ModeChangedEvent {
	return ModeChangedEvent{baseEvent: newBaseEvent(), Mode: mode}
}

// PresetChangedEvent is published when the visual tuning preset changes.
type PresetChangedEvent struct {
	baseEvent
	Name string
}

// Type returns the event type.
func (e PresetChangedEvent) Type() EventType {
	return EventPresetChanged
}

// NewPresetChangedEvent creates a new PresetChangedEvent.
func NewPresetChangedEvent(name string) PresetChangedEvent {
	return PresetChangedEvent{baseEvent: newBaseEvent(), Name: name}
}

// ThemeColorChangedEvent is published when the theme service advances to a
// new active color. The frame update engine interpolates toward this color
// over several seconds rather than snapping.
type ThemeColorChangedEvent struct {
	baseEvent
	Color RGB
}

// Type returns the event type.
func (e ThemeColorChangedEvent) Type() EventType {
	return EventThemeColorChanged
}

// NewThemeColorChangedEvent creates a new ThemeColorChangedEvent.
func NewThemeColorChangedEvent(color RGB) ThemeColorChangedEvent {
	return ThemeColorChangedEvent{baseEvent: newBaseEvent(), Color: color}
}

// VolumeChangedEvent is published when the playback volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Volume float64
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType {
	return EventVolumeChanged
}

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(volume float64) VolumeChangedEvent {
	return VolumeChangedEvent{baseEvent: newBaseEvent(), Volume: volume}
}
