package pcm

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
)

// Engine is the production implementation of the AudioEngine interface.
// Decoded clips are resampled to the output device rate and streamed through
// an oto player; a tap on the stream feeds the spectral analyzer.
//
// Thread-safety: all operations are guarded by a sync.RWMutex. Spectrum
// contends only briefly; the analyzer has its own lock.
type Engine struct {
	mu     sync.RWMutex
	logger *slog.Logger

	initialized bool
	sampleRate  int
	otoCtx      *oto.Context

	clip     *Clip
	stream   *tapStream
	player   *oto.Player
	status   domain.PlaybackStatus
	volume   float64
	analyzer *Analyzer
}

// NewEngine creates an uninitialized engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:   logger,
		volume:   1.0,
		analyzer: NewAnalyzer(domain.DefaultResolution),
	}
}

// Initialize opens the output device. Only one audio context may exist per
// process, so Initialize must be called exactly once before Load.
func (e *Engine) Initialize(sampleRate int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return domain.ErrAlreadyInitialized
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return domain.NewAudioEngineError("initialize", "", "opening output device", err)
	}
	<-ready

	e.otoCtx = ctx
	e.sampleRate = sampleRate
	e.initialized = true
	e.logger.Info("audio engine initialized", "sample_rate", sampleRate)

	return nil
}

// Shutdown stops playback and releases the loaded track. The underlying
// audio context cannot be destroyed, so it is suspended instead.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}

	e.unloadLocked()
	if err := e.otoCtx.Suspend(); err != nil {
		e.logger.Warn("suspending audio context failed", "error", err)
	}

	e.initialized = false
	e.logger.Info("audio engine shut down")

	return nil
}

// IsInitialized reports whether the output device is open.
func (e *Engine) IsInitialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// Load decodes a file and prepares it for playback, replacing any
// previously loaded track.
func (e *Engine) Load(filePath string) (domain.Track, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.Track{}, domain.ErrNotInitialized
	}

	clip, err := Decode(filePath)
	if err != nil {
		return domain.Track{}, err
	}

	if clip.SampleRate != e.sampleRate {
		e.logger.Debug("resampling clip",
			"path", filePath,
			"from", clip.SampleRate,
			"to", e.sampleRate)
		clip.PCM = resampleStereo(clip.PCM, clip.SampleRate, e.sampleRate)
		clip.SampleRate = e.sampleRate
	}

	e.unloadLocked()

	e.clip = clip
	e.stream = &tapStream{pcm: clip.PCM, analyzer: e.analyzer}
	e.player = e.otoCtx.NewPlayer(e.stream)
	e.player.SetVolume(e.volume)
	e.status = domain.StatusStopped

	e.logger.Info("track loaded",
		"path", filePath,
		"title", clip.Track.Title,
		"duration", clip.Track.Duration)

	return clip.Track, nil
}

// unloadLocked releases the current track. Caller must hold the write lock.
func (e *Engine) unloadLocked() {
	if e.player != nil {
		if err := e.player.Close(); err != nil {
			e.logger.Warn("closing player failed", "error", err)
		}
	}
	e.player = nil
	e.stream = nil
	e.clip = nil
	e.status = domain.StatusStopped
	e.analyzer.Reset()
}

// Play starts or resumes playback. A track that ran to completion restarts
// from the beginning.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}
	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}
	if e.status == domain.StatusPlaying {
		return nil
	}

	if e.stream.exhausted() {
		if _, err := e.player.Seek(0, io.SeekStart); err != nil {
			return domain.NewAudioEngineError("play", e.clip.Track.FilePath, "rewinding", err)
		}
		e.analyzer.Reset()
	}

	e.player.Play()
	e.status = domain.StatusPlaying

	return nil
}

// Pause pauses playback, preserving the current position.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}
	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}
	if e.status != domain.StatusPlaying {
		return nil
	}

	e.player.Pause()
	e.status = domain.StatusPaused

	return nil
}

// Stop halts playback and rewinds to the beginning.
func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}
	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}

	e.player.Pause()
	if _, err := e.player.Seek(0, io.SeekStart); err != nil {
		return domain.NewAudioEngineError("stop", e.clip.Track.FilePath, "rewinding", err)
	}
	e.analyzer.Reset()
	e.status = domain.StatusStopped

	return nil
}

// Status returns the playback status. A track that has drained both the
// stream and the device buffer reports stopped.
func (e *Engine) Status() domain.PlaybackStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.status == domain.StatusPlaying && e.stream != nil &&
		e.stream.exhausted() && e.player.BufferedSize() == 0 {
		return domain.StatusStopped
	}
	return e.status
}

// Position returns the playback position, accounting for audio still queued
// in the device buffer.
func (e *Engine) Position() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.clip == nil || e.sampleRate == 0 {
		return 0
	}

	consumed := e.stream.position() - e.player.BufferedSize()
	if consumed < 0 {
		consumed = 0
	}
	frames := consumed / bytesPerFrame
	return time.Duration(frames) * time.Second / time.Duration(e.sampleRate)
}

// Duration returns the loaded track length, or zero with no track.
func (e *Engine) Duration() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.clip == nil {
		return 0
	}
	return e.clip.Duration()
}

// Seek sets the playback position within [0, Duration].
func (e *Engine) Seek(position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return domain.ErrNotInitialized
	}
	if e.clip == nil {
		return domain.ErrNoTrackLoaded
	}
	if position < 0 || position > e.clip.Duration() {
		return domain.ErrInvalidPosition
	}

	frames := int64(position) * int64(e.sampleRate) / int64(time.Second)
	if _, err := e.player.Seek(frames*bytesPerFrame, io.SeekStart); err != nil {
		return domain.NewAudioEngineError("seek", e.clip.Track.FilePath, "seeking stream", err)
	}
	e.analyzer.Reset()

	return nil
}

// SetVolume sets the playback volume from 0.0 to 1.0.
func (e *Engine) SetVolume(volume float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	e.volume = volume
	if e.player != nil {
		e.player.SetVolume(volume)
	}

	return nil
}

// Volume returns the current volume level.
func (e *Engine) Volume() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.volume
}

// Spectrum samples the analyzer for the current frame. When playback is not
// active the frame is the silent default, so the visualizer never sees stale
// audio.
func (e *Engine) Spectrum(resolution int) domain.SpectrumFrame {
	if e.Status() != domain.StatusPlaying {
		return domain.NewSilentFrame(resolution)
	}
	return e.analyzer.Spectrum(resolution)
}

// Verify that Engine implements the AudioEngine interface
var _ ports.AudioEngine = (*Engine)(nil)

// tapStream serves decoded PCM to the output device while mirroring a mono
// mix of everything read into the analyzer ring buffer.
type tapStream struct {
	mu       sync.Mutex
	pcm      []byte
	pos      int
	analyzer *Analyzer
	mono     []float64
}

// Read serves whole stereo frames and taps them into the analyzer.
func (s *tapStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos >= len(s.pcm) {
		return 0, io.EOF
	}

	n := copy(p, s.pcm[s.pos:])
	n -= n % bytesPerFrame
	if n == 0 {
		return 0, io.EOF
	}
	chunk := s.pcm[s.pos : s.pos+n]
	s.pos += n

	frames := n / bytesPerFrame
	if cap(s.mono) < frames {
		s.mono = make([]float64, frames)
	}
	s.mono = s.mono[:frames]
	for i := 0; i < frames; i++ {
		left := int16(uint16(chunk[i*4]) | uint16(chunk[i*4+1])<<8)
		right := int16(uint16(chunk[i*4+2]) | uint16(chunk[i*4+3])<<8)
		s.mono[i] = (float64(left) + float64(right)) / (2 * 32768)
	}
	s.analyzer.Push(s.mono)

	return n, nil
}

// Seek repositions the stream, aligned to a whole frame.
func (s *tapStream) Seek(offset int64, whence int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(s.pos) + offset
	case io.SeekEnd:
		target = int64(len(s.pcm)) + offset
	default:
		return 0, domain.ErrInvalidPosition
	}

	if target < 0 {
		target = 0
	}
	if target > int64(len(s.pcm)) {
		target = int64(len(s.pcm))
	}
	target -= target % bytesPerFrame

	s.pos = int(target)
	return target, nil
}

// position returns the byte offset consumed so far.
func (s *tapStream) position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// exhausted reports whether the stream has served all PCM.
func (s *tapStream) exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= len(s.pcm)
}
