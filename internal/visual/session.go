package visual

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// Session owns the complete visualizer state: the active mode strategy, the
// camera, the renderer and the shared inputs pushed in by collaborators
// (play state, active color, selected mode). One Tick runs the whole
// Sampler → Update → Render pipeline synchronously; ticks never overlap and
// mode switches are atomic with respect to the tick loop.
type Session struct {
	mu sync.Mutex

	source   ports.SpectrumSource
	preset   Preset
	strategy Strategy
	camera   *scene.Camera
	renderer *scene.Renderer
	logger   *slog.Logger

	playing bool
	active  domain.RGB

	// silent is the cached zero frame substituted while playback is
	// inactive, so geometry settles to its idle shape instead of freezing
	// on stale data.
	silent domain.SpectrumFrame

	start  time.Time
	now    func() time.Time
	closed bool
}

// NewSession creates a session with the given spectrum source and preset,
// starting in the rings mode.
func NewSession(source ports.SpectrumSource, preset Preset, logger *slog.Logger) *Session {
	s := &Session{
		source:   source,
		preset:   preset,
		camera:   scene.NewCamera(preset.CameraBaseline),
		renderer: scene.NewRenderer(),
		logger:   logger,
		active:   domain.RGB{R: 0.2, G: 0.75, B: 1.0},
		silent:   domain.NewSilentFrame(domain.DefaultResolution),
		start:    time.Now(),
		now:      time.Now,
	}
	s.strategy = NewStrategy(domain.ModeRings, preset)
	return s
}

// SetMode switches the active visual mode. The outgoing mode's objects are
// fully released and the new topology built before the method returns, so
// the next tick can never observe a half-built scene.
func (s *Session) SetMode(mode domain.VisualMode) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.strategy.Mode() == mode {
		return
	}

	s.strategy.Release()
	s.strategy = NewStrategy(mode, s.preset)

	if s.logger != nil {
		s.logger.Info("visual mode changed", slog.String("mode", mode.String()))
	}
}

// Mode returns the active visual mode.
func (s *Session) Mode() domain.VisualMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy.Mode()
}

// SetPreset swaps the tuning preset, rebuilding the active mode with the new
// topology.
func (s *Session) SetPreset(preset Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	mode := s.strategy.Mode()
	s.strategy.Release()
	s.preset = preset
	s.camera = scene.NewCamera(preset.CameraBaseline)
	s.strategy = NewStrategy(mode, preset)

	if s.logger != nil {
		s.logger.Info("visual preset changed", slog.String("preset", preset.Name))
	}
}

// SetPlaying pushes the collaborator's play state. While false, the update
// engine sees a silent frame each tick.
func (s *Session) SetPlaying(playing bool) {
	s.mu.Lock()
	s.playing = playing
	s.mu.Unlock()
}

// SetActiveColor pushes a new theme color target. Geometry colors ease
// toward it over the following frames.
func (s *Session) SetActiveColor(color domain.RGB) {
	s.mu.Lock()
	s.active = color
	s.mu.Unlock()
}

// Tick runs one frame: sample the spectrum once, run the active mode's
// update, advance the camera and render into img. The image dimensions are
// the viewport; resizing simply hands a differently sized image to the next
// tick.
func (s *Session) Tick(img *image.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	frame := s.silent
	if s.playing {
		frame = s.source.Spectrum(domain.DefaultResolution)
	}

	elapsed := s.now().Sub(s.start).Seconds()

	s.strategy.Update(Input{
		Frame:   frame,
		Elapsed: elapsed,
		Active:  s.active,
	})

	target := s.preset.CameraBaseline - frame.BassEnergy()*s.preset.CameraBassPull
	s.camera.Approach(target, s.preset.CameraSmoothing)

	s.renderer.Render(img, s.camera, s.strategy.Objects())
}

// Objects exposes the active strategy's drawables for inspection.
func (s *Session) Objects() []*scene.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy.Objects()
}

// Close releases all mode-owned resources. Subsequent ticks are no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.strategy.Release()
}
