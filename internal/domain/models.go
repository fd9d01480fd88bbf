// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the AuraVis visualizer.
package domain

import (
	"time"
)

// DefaultResolution is the number of frequency bins and waveform samples
// produced per spectrum frame.
const DefaultResolution = 512

// SpectrumFrame holds one tick's worth of audio analysis data: frequency-domain
// magnitudes and time-domain waveform samples, both as unsigned 8-bit values.
//
// A frame is produced fresh each render tick and must be treated as read-only
// by consumers. A zero-valued frame (all magnitudes 0, all waveform samples
// centered at 128) represents silence and is a valid state, not an error.
type SpectrumFrame struct {
	// FrequencyBins contains frequency-domain magnitudes, 0 (silent) to 255 (loud).
	// Index 0 is the lowest frequency.
	FrequencyBins []byte

	// WaveformSamples contains time-domain samples, centered at 128.
	WaveformSamples []byte
}

// NewSilentFrame returns a frame of the given resolution representing silence.
// Frequency magnitudes are zero and waveform samples sit at the 128 midpoint.
func NewSilentFrame(resolution int) SpectrumFrame {
	f := SpectrumFrame{
		FrequencyBins:   make([]byte, resolution),
		WaveformSamples: make([]byte, resolution),
	}
	for i := range f.WaveformSamples {
		f.WaveformSamples[i] = 128
	}
	return f
}

// Resolution returns the number of frequency bins in the frame.
func (f SpectrumFrame) Resolution() int {
	return len(f.FrequencyBins)
}

// Bin returns the normalized magnitude (0.0 to 1.0) of the given frequency bin.
// Out-of-range indices return 0.
func (f SpectrumFrame) Bin(i int) float64 {
	if i < 0 || i >= len(f.FrequencyBins) {
		return 0
	}
	return float64(f.FrequencyBins[i]) / 255.0
}

// Sample returns the normalized waveform sample (-1.0 to 1.0) at the given index.
// Out-of-range indices return 0.
func (f SpectrumFrame) Sample(i int) float64 {
	if i < 0 || i >= len(f.WaveformSamples) {
		return 0
	}
	return (float64(f.WaveformSamples[i]) - 128.0) / 128.0
}

// BassEnergy returns the average normalized magnitude of the low-frequency bins.
// Uses the first 16 bins (roughly 0-700Hz at 44.1kHz with 512 bins).
func (f SpectrumFrame) BassEnergy() float64 {
	return f.bandEnergy(0, 16)
}

// MidEnergy returns the average normalized magnitude of the mid-frequency bins.
func (f SpectrumFrame) MidEnergy() float64 {
	return f.bandEnergy(16, 96)
}

// TrebleEnergy returns the average normalized magnitude of the high-frequency bins.
func (f SpectrumFrame) TrebleEnergy() float64 {
	return f.bandEnergy(96, len(f.FrequencyBins))
}

func (f SpectrumFrame) bandEnergy(lo, hi int) float64 {
	if hi > len(f.FrequencyBins) {
		hi = len(f.FrequencyBins)
	}
	if lo >= hi {
		return 0
	}
	var sum float64
	for i := lo; i < hi; i++ {
		sum += float64(f.FrequencyBins[i])
	}
	return sum / float64(hi-lo) / 255.0
}

// VisualMode identifies one of the mutually exclusive visualization algorithms.
// Exactly one mode is active at a time; switching tears down the previous
// mode's scene objects and rebuilds from scratch.
type VisualMode int

// Available visual modes.
const (
	ModeRings VisualMode = iota
	ModeMirroredSpikes
	ModeOscilloscopeRibbons
	ModeEQBars
	ModeVolumetricWave
)

// String returns a human-readable name for the mode.
func (m VisualMode) String() string {
	switch m {
	case ModeRings:
		return "rings"
	case ModeMirroredSpikes:
		return "mirrored spikes"
	case ModeOscilloscopeRibbons:
		return "oscilloscope ribbons"
	case ModeEQBars:
		return "eq bars"
	case ModeVolumetricWave:
		return "volumetric wave"
	default:
		return "unknown"
	}
}

// AllModes returns every visual mode in display order.
func AllModes() []VisualMode {
	return []VisualMode{
		ModeRings,
		ModeMirroredSpikes,
		ModeOscilloscopeRibbons,
		ModeEQBars,
		ModeVolumetricWave,
	}
}

// RGB is a color with components in the 0.0 to 1.0 range.
// Components outside that range are clamped when converted for display.
type RGB struct {
	R, G, B float64
}

// Approach moves the color toward target by the fraction k and returns the
// result. k is the exponential smoothing rate: 0 leaves the color unchanged,
// 1 snaps to the target. When the color already equals the target the result
// is exactly the target (the smoothing fixed point).
func (c RGB) Approach(target RGB, k float64) RGB {
	return RGB{
		R: c.R + (target.R-c.R)*k,
		G: c.G + (target.G-c.G)*k,
		B: c.B + (target.B-c.B)*k,
	}
}

// Blend linearly interpolates between c and other by t (0 returns c, 1
// returns other).
func (c RGB) Blend(other RGB, t float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// PeakState is the per-bar physics state for the EQ bars peak-hold indicator.
// The peak rises instantly to track a rising bar and falls under constant
// deceleration otherwise, clamped at a floor. It persists across frames
// within a mode session and resets on mode rebuild.
type PeakState struct {
	Height   float64
	Velocity float64
}

// Track represents a loaded audio track with display metadata.
type Track struct {
	// FilePath is the absolute path to the audio file on the filesystem.
	FilePath string

	// Title is the song title (from metadata or filename).
	Title string

	// Artist is the performing artist name.
	Artist string

	// Album is the album name.
	Album string

	// Duration is the total length of the track.
	Duration time.Duration

	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// AlbumArt is the embedded album artwork as raw bytes, nil if absent.
	AlbumArt []byte
}

// PlaybackStatus represents the current playback state.
type PlaybackStatus int

const (
	// StatusStopped indicates playback is stopped or no track is loaded.
	StatusStopped PlaybackStatus = iota

	// StatusPlaying indicates playback is active.
	StatusPlaying

	// StatusPaused indicates playback is paused.
	StatusPaused
)

// String returns a human-readable representation of the playback status.
func (s PlaybackStatus) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}
