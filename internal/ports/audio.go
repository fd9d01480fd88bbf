// Package ports define interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"

	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// AudioEngine is the interface for audio playback and analysis engines.
// This abstracts the underlying audio stack (decoders, output device, FFT)
// and allows for testing with mocks.
//
// Implementations must be thread-safe: playback control runs on the UI
// goroutine while Spectrum is called from the render tick.
type AudioEngine interface {
	// Lifecycle methods

	// Initialize sets up the audio engine and the output device.
	// sampleRate: Output sample rate in Hz (e.g., 44100).
	//
	// Returns an error if initialization fails.
	Initialize(sampleRate int) error

	// Shutdown releases all audio engine resources.
	// Should be called when the engine is no longer needed.
	Shutdown() error

	// IsInitialized returns true if the engine has been successfully initialized.
	IsInitialized() bool

	// Track methods

	// Load decodes an audio file and prepares it for playback.
	// Any previously loaded track is stopped and released first.
	//
	// Returns the track metadata, or an error if decoding fails.
	Load(filePath string) (domain.Track, error)

	// Playback control

	// Play starts or resumes playback of the loaded track.
	Play() error

	// Pause pauses playback, preserving the current position.
	Pause() error

	// Stop stops playback and rewinds to the beginning.
	Stop() error

	// State queries

	// Status returns the current playback status.
	Status() domain.PlaybackStatus

	// Position returns the current playback position within the track.
	Position() time.Duration

	// Duration returns the total duration of the loaded track
	// (zero when no track is loaded).
	Duration() time.Duration

	// Seek sets the playback position. The position must be within
	// [0, Duration].
	Seek(position time.Duration) error

	// Volume control

	// SetVolume sets the playback volume from 0.0 (silent) to 1.0 (full).
	SetVolume(volume float64) error

	// Volume returns the current volume level.
	Volume() float64

	// Analysis

	// Spectrum samples the engine's analysis state and returns a spectrum
	// frame of the given resolution for the current audio position.
	//
	// There are no error conditions: when no track is loaded, or playback
	// is stopped, the returned frame is the silent default. Callers should
	// invoke this at most once per render tick; analysis is comparatively
	// expensive and only meaningful per displayed frame.
	Spectrum(resolution int) domain.SpectrumFrame
}

// SpectrumSource is the narrow read side of AudioEngine consumed by the
// visualizer session. The session holds only this interface so tests can
// drive it with a synthetic source.
type SpectrumSource interface {
	Spectrum(resolution int) domain.SpectrumFrame
}
