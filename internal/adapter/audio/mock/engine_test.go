package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tejashwikalptaru/auravis/internal/domain"
)

func newInitializedEngine(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine()
	require.NoError(t, engine.Initialize(44100))
	return engine
}

// TestInitializeLifecycle tests the initialize/shutdown cycle.
func TestInitializeLifecycle(t *testing.T) {
	engine := NewEngine()

	assert.False(t, engine.IsInitialized())
	assert.ErrorIs(t, engine.Shutdown(), domain.ErrNotInitialized)

	require.NoError(t, engine.Initialize(44100))
	assert.True(t, engine.IsInitialized())
	assert.ErrorIs(t, engine.Initialize(44100), domain.ErrAlreadyInitialized)

	require.NoError(t, engine.Shutdown())
	assert.False(t, engine.IsInitialized())
}

// TestInitializeFailure tests the configurable initialization failure.
func TestInitializeFailure(t *testing.T) {
	engine := NewEngine()
	engine.SetFailInitialize(true)

	err := engine.Initialize(44100)
	require.Error(t, err)

	var engineErr *domain.AudioEngineError
	assert.ErrorAs(t, err, &engineErr)
	assert.False(t, engine.IsInitialized())
}

// TestLoadTrack tests loading and metadata synthesis.
func TestLoadTrack(t *testing.T) {
	engine := newInitializedEngine(t)

	track, err := engine.Load("/music/sunrise.mp3")
	require.NoError(t, err)

	assert.Equal(t, "/music/sunrise.mp3", track.FilePath)
	assert.Equal(t, "sunrise", track.Title)
	assert.Equal(t, 3*time.Minute, track.Duration)
	assert.Equal(t, 44100, track.SampleRate)
	assert.Equal(t, 3*time.Minute, engine.Duration())
}

// TestLoadErrors tests load failure modes.
func TestLoadErrors(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Load("/music/track.mp3")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	require.NoError(t, engine.Initialize(44100))

	_, err = engine.Load("")
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	engine.SetFailLoad(true)
	_, err = engine.Load("/music/track.mp3")
	var engineErr *domain.AudioEngineError
	assert.ErrorAs(t, err, &engineErr)
}

// TestPlaybackTransitions tests the play/pause/stop state machine.
func TestPlaybackTransitions(t *testing.T) {
	engine := newInitializedEngine(t)

	assert.ErrorIs(t, engine.Play(), domain.ErrNoTrackLoaded)

	_, err := engine.Load("/music/track.mp3")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusStopped, engine.Status())

	require.NoError(t, engine.Play())
	assert.Equal(t, domain.StatusPlaying, engine.Status())

	require.NoError(t, engine.Pause())
	assert.Equal(t, domain.StatusPaused, engine.Status())

	require.NoError(t, engine.Play())
	assert.Equal(t, domain.StatusPlaying, engine.Status())

	require.NoError(t, engine.Stop())
	assert.Equal(t, domain.StatusStopped, engine.Status())
	assert.Equal(t, time.Duration(0), engine.Position())
}

// TestPauseResumeKeepsPosition tests that pause preserves position while
// stop rewinds it.
func TestPauseResumeKeepsPosition(t *testing.T) {
	engine := newInitializedEngine(t)

	_, err := engine.Load("/music/track.mp3")
	require.NoError(t, err)
	require.NoError(t, engine.Play())
	require.NoError(t, engine.SimulateProgress(30*time.Second))

	require.NoError(t, engine.Pause())
	assert.Equal(t, 30*time.Second, engine.Position())

	require.NoError(t, engine.Play())
	assert.Equal(t, 30*time.Second, engine.Position())

	require.NoError(t, engine.Stop())
	require.NoError(t, engine.Play())
	assert.Equal(t, time.Duration(0), engine.Position(), "play after stop restarts")
}

// TestSeekValidation tests seek bounds.
func TestSeekValidation(t *testing.T) {
	engine := newInitializedEngine(t)

	_, err := engine.Load("/music/track.mp3")
	require.NoError(t, err)

	assert.ErrorIs(t, engine.Seek(-time.Second), domain.ErrInvalidPosition)
	assert.ErrorIs(t, engine.Seek(4*time.Minute), domain.ErrInvalidPosition)

	require.NoError(t, engine.Seek(90*time.Second))
	assert.Equal(t, 90*time.Second, engine.Position())
}

// TestVolumeValidation tests the volume range check.
func TestVolumeValidation(t *testing.T) {
	engine := NewEngine()

	assert.Equal(t, 1.0, engine.Volume())
	assert.ErrorIs(t, engine.SetVolume(-0.1), domain.ErrInvalidVolume)
	assert.ErrorIs(t, engine.SetVolume(1.5), domain.ErrInvalidVolume)

	require.NoError(t, engine.SetVolume(0.5))
	assert.Equal(t, 0.5, engine.Volume())
}

// TestSimulateProgressCompletion tests that running past the end stops
// playback at the track duration.
func TestSimulateProgressCompletion(t *testing.T) {
	engine := newInitializedEngine(t)

	_, err := engine.Load("/music/track.mp3")
	require.NoError(t, err)
	require.NoError(t, engine.Play())

	require.NoError(t, engine.SimulateProgress(10*time.Minute))

	assert.Equal(t, domain.StatusStopped, engine.Status())
	assert.Equal(t, 3*time.Minute, engine.Position())
}

// TestSpectrumSilentUnlessPlaying tests the analysis contract.
func TestSpectrumSilentUnlessPlaying(t *testing.T) {
	engine := newInitializedEngine(t)

	frame := engine.Spectrum(domain.DefaultResolution)
	require.Equal(t, domain.DefaultResolution, frame.Resolution())
	for i := 0; i < frame.Resolution(); i++ {
		assert.Equal(t, byte(0), frame.FrequencyBins[i])
		assert.Equal(t, byte(128), frame.WaveformSamples[i])
	}
}

// TestSpectrumSynthesisWhilePlaying tests that playback produces an animated
// bass-heavy frame.
func TestSpectrumSynthesisWhilePlaying(t *testing.T) {
	engine := newInitializedEngine(t)

	_, err := engine.Load("/music/track.mp3")
	require.NoError(t, err)
	require.NoError(t, engine.Play())

	first := engine.Spectrum(domain.DefaultResolution)
	assert.Greater(t, first.BassEnergy(), first.TrebleEnergy(),
		"synthetic spectrum should slope toward the bass")

	second := engine.Spectrum(domain.DefaultResolution)
	assert.NotEqual(t, first.FrequencyBins, second.FrequencyBins,
		"consecutive frames should animate")
}
