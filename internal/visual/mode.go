package visual

import (
	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// Input carries everything a mode strategy reads during one frame update.
// The session substitutes a silent frame when playback is inactive, so
// strategies always run their full update and settle to their idle shape
// rather than freezing on stale data.
type Input struct {
	// Frame is the spectrum frame for this tick, read-only.
	Frame domain.SpectrumFrame

	// Elapsed is the animation clock in seconds since the session started.
	Elapsed float64

	// Active is the externally driven theme color. Ordinary drawables
	// interpolate toward it; highlight drawables keep their fixed tint.
	Active domain.RGB
}

// Strategy is the per-mode visualization algorithm: it builds a fixed
// geometry topology once and rewrites every dynamic buffer each frame.
//
// A strategy's objects are created in its constructor and live until
// Release. Buffer lengths never change after construction.
type Strategy interface {
	// Mode returns the visual mode this strategy implements.
	Mode() domain.VisualMode

	// Objects returns the mode's drawables in draw order. The slice and
	// the objects are owned by the strategy; callers must not retain them
	// across a mode switch.
	Objects() []*scene.Object

	// Update rewrites every dynamic buffer and per-object transform from
	// this frame's input. It is called exactly once per tick.
	Update(in Input)

	// Release frees all scene objects. The strategy must not be used
	// afterwards.
	Release()
}

// NewStrategy constructs the strategy for a mode with the given preset.
func NewStrategy(mode domain.VisualMode, p Preset) Strategy {
	switch mode {
	case domain.ModeRings:
		return newRings(p)
	case domain.ModeMirroredSpikes:
		return newSpikes(p)
	case domain.ModeOscilloscopeRibbons:
		return newRibbons(p)
	case domain.ModeEQBars:
		return newBars(p)
	case domain.ModeVolumetricWave:
		return newWave(p)
	default:
		return newRings(p)
	}
}

// highlightTint is the fixed near-white color of highlight and peak
// drawables. Highlights are never retinted toward the active color.
var highlightTint = domain.RGB{R: 0.96, G: 0.97, B: 1.0}

// binAt maps a normalized position (0..1) to a spectrum bin index for a
// frame of the given resolution. The mapping skips the DC bin and stays in
// the lower half of the spectrum where musical energy lives.
func binAt(pos float64, resolution int) int {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	idx := 1 + int(pos*float64(resolution/2-2))
	return idx
}

// releaseAll releases every object in the slice.
func releaseAll(objects []*scene.Object) {
	for _, o := range objects {
		o.Release()
	}
}
