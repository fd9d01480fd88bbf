// Package mock provides a mock implementation of the AudioEngine interface.
// This is used for testing services without opening a real audio device, and
// as a demo engine that feeds the visualizer a synthetic spectrum.
package mock

import (
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
)

// Engine is a mock implementation of the AudioEngine interface.
// It simulates playback in memory and synthesizes deterministic spectrum
// frames so the visualizer animates without audio hardware.
//
// Thread-safety: This implementation is thread-safe.
type Engine struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  int

	track    *domain.Track
	status   domain.PlaybackStatus
	position time.Duration
	volume   float64
	phase    float64

	// Behavior configuration (for testing error scenarios)
	failInitialize bool
	failLoad       bool
	failPlay       bool
}

// NewEngine creates a new mock audio engine.
func NewEngine() *Engine {
	return &Engine{volume: 1.0}
}

// SetFailInitialize configures the mock to fail initialization (for testing).
func (m *Engine) SetFailInitialize(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failInitialize = fail
}

// SetFailLoad configures the mock to fail loading tracks (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// Initialize initializes the mock audio engine.
func (m *Engine) Initialize(sampleRate int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInitialize {
		return domain.NewAudioEngineError("initialize", "", "mock initialization failed", nil)
	}

	if m.initialized {
		return domain.ErrAlreadyInitialized
	}

	m.initialized = true
	m.sampleRate = sampleRate

	return nil
}

// Shutdown shuts down the mock audio engine.
func (m *Engine) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}

	m.initialized = false
	m.track = nil
	m.status = domain.StatusStopped
	m.position = 0

	return nil
}

// IsInitialized returns true if the engine is initialized.
func (m *Engine) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Load simulates decoding a file, deriving the title from the file name.
func (m *Engine) Load(filePath string) (domain.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.Track{}, domain.ErrNotInitialized
	}

	if m.failLoad {
		return domain.Track{}, domain.NewAudioEngineError("load", filePath, "mock load failed", nil)
	}

	if filePath == "" {
		return domain.Track{}, domain.ErrFileNotFound
	}

	name := filepath.Base(filePath)
	track := domain.Track{
		FilePath:   filePath,
		Title:      strings.TrimSuffix(name, filepath.Ext(name)),
		Artist:     "Mock Artist",
		Album:      "Mock Album",
		Duration:   3 * time.Minute,
		SampleRate: m.sampleRate,
	}

	m.track = &track
	m.status = domain.StatusStopped
	m.position = 0

	return track, nil
}

// Play starts or resumes simulated playback.
func (m *Engine) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	if m.track == nil {
		return domain.ErrNoTrackLoaded
	}
	if m.failPlay {
		return domain.NewAudioEngineError("play", m.track.FilePath, "mock play failed", nil)
	}

	if m.status == domain.StatusStopped {
		m.position = 0
	}
	m.status = domain.StatusPlaying

	return nil
}

// Pause pauses simulated playback.
func (m *Engine) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	if m.track == nil {
		return domain.ErrNoTrackLoaded
	}

	if m.status == domain.StatusPlaying {
		m.status = domain.StatusPaused
	}

	return nil
}

// Stop stops simulated playback and rewinds.
func (m *Engine) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	if m.track == nil {
		return domain.ErrNoTrackLoaded
	}

	m.status = domain.StatusStopped
	m.position = 0

	return nil
}

// Status returns the simulated playback status.
func (m *Engine) Status() domain.PlaybackStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Position returns the simulated playback position.
func (m *Engine) Position() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.position
}

// Duration returns the simulated track duration.
func (m *Engine) Duration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.track == nil {
		return 0
	}
	return m.track.Duration
}

// Seek sets the simulated playback position.
func (m *Engine) Seek(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return domain.ErrNotInitialized
	}
	if m.track == nil {
		return domain.ErrNoTrackLoaded
	}
	if position < 0 || position > m.track.Duration {
		return domain.ErrInvalidPosition
	}

	m.position = position
	return nil
}

// SetVolume sets the simulated volume.
func (m *Engine) SetVolume(volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	m.volume = volume
	return nil
}

// Volume returns the simulated volume.
func (m *Engine) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// SimulateProgress advances the simulated position (for testing). Running
// past the end stops playback, matching the real engine's drain behavior.
func (m *Engine) SimulateProgress(delta time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.track == nil {
		return domain.ErrNoTrackLoaded
	}
	if m.status != domain.StatusPlaying {
		return nil
	}

	m.position += delta
	if m.position >= m.track.Duration {
		m.position = m.track.Duration
		m.status = domain.StatusStopped
	}

	return nil
}

// Spectrum synthesizes a deterministic frame: a bass-heavy magnitude slope
// with a slow swell, and a sine waveform. Each call advances the swell phase
// so consecutive frames animate.
func (m *Engine) Spectrum(resolution int) domain.SpectrumFrame {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame := domain.NewSilentFrame(resolution)
	if m.status != domain.StatusPlaying {
		return frame
	}

	m.phase += 0.05
	swell := 0.6 + 0.4*math.Sin(m.phase)

	for i := 0; i < resolution; i++ {
		falloff := 1.0 - float64(i)/float64(resolution)
		v := swell * falloff * falloff * 255
		if v > 255 {
			v = 255
		}
		frame.FrequencyBins[i] = byte(v)

		s := math.Sin(m.phase*3 + 2*math.Pi*4*float64(i)/float64(resolution))
		frame.WaveformSamples[i] = byte(128 + s*100*swell)
	}

	return frame
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)
