package visual

import (
	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// EQ bars mode constants.
const (
	barSpan        = 540.0 // total horizontal extent of the bar field
	barFillRatio   = 0.7   // bar width as a fraction of its slot
	barHeightScale = 240.0 // bar height per unit of bin magnitude
	barDepth       = 10.0
	capThickness   = 3.0
	barActiveBlend = 0.35 // how much the active color shows through the gradient
)

// Fixed gradient endpoints for the amplitude tint.
var (
	barColdColor = domain.RGB{R: 0.1, G: 0.45, B: 0.85}
	barHotColor  = domain.RGB{R: 0.95, G: 0.3, B: 0.25}
)

// bars renders a classic equalizer: one box instance per bar tracking its
// spectrum bin instantly, plus a cap instance per bar implementing falling
// peak-hold physics like an analog VU-meter peak light.
type bars struct {
	preset  Preset
	boxes   []*scene.Object
	caps    []*scene.Object
	peaks   []domain.PeakState
	smooth  domain.RGB // smoothed copy of the active color
	objects []*scene.Object
}

func newBars(p Preset) *bars {
	b := &bars{
		preset: p,
		boxes:  make([]*scene.Object, p.BarCount),
		caps:   make([]*scene.Object, p.BarCount),
		peaks:  make([]domain.PeakState, p.BarCount),
	}

	slot := barSpan / float64(p.BarCount)
	width := slot * barFillRatio

	for i := 0; i < p.BarCount; i++ {
		box := scene.NewBox(scene.Vec3{X: width, Y: p.BarFloor, Z: barDepth}, barColdColor, scene.BarMeta{Index: i})
		peakCap := scene.NewBox(scene.Vec3{X: width * 1.1, Y: capThickness, Z: barDepth}, highlightTint, scene.BarMeta{Index: i})
		b.boxes[i] = box
		b.caps[i] = peakCap
		b.peaks[i] = domain.PeakState{Height: p.BarFloor}
		b.objects = append(b.objects, box, peakCap)
	}

	return b
}

func (b *bars) Mode() domain.VisualMode { return domain.ModeEQBars }

func (b *bars) Objects() []*scene.Object { return b.objects }

func (b *bars) Update(in Input) {
	p := b.preset
	resolution := in.Frame.Resolution()

	b.smooth = b.smooth.Approach(in.Active, p.ColorSmoothing)

	for i := 0; i < p.BarCount; i++ {
		pos := float64(i) / float64(p.BarCount-1)
		amp := in.Frame.Bin(binAt(pos, resolution))

		// Bars track their bin instantly; only the floor is enforced.
		height := amp * barHeightScale
		if height < p.BarFloor {
			height = p.BarFloor
		}

		x := (pos - 0.5) * barSpan

		box := b.boxes[i]
		box.Center = scene.Vec3{X: x, Y: height / 2}
		box.Size.Y = height

		tint := barColdColor.Blend(barHotColor, amp)
		box.Tint = tint.Blend(b.smooth, barActiveBlend)

		b.peaks[i] = stepPeak(b.peaks[i], height, p.PeakGravity, p.BarFloor)

		peakCap := b.caps[i]
		peakCap.Center = scene.Vec3{X: x, Y: b.peaks[i].Height + capThickness/2}
	}
}

// stepPeak advances one bar's peak-hold state by one frame. A rising bar
// snaps the peak up to the bar top and zeroes the velocity; otherwise the
// peak falls under constant deceleration, clamped at the floor.
func stepPeak(s domain.PeakState, barTop, gravity, floor float64) domain.PeakState {
	if barTop >= s.Height {
		return domain.PeakState{Height: barTop}
	}
	s.Velocity -= gravity
	s.Height += s.Velocity
	if s.Height < floor {
		s.Height = floor
		s.Velocity = 0
	}
	return s
}

func (b *bars) Release() {
	releaseAll(b.objects)
}

// Verify interface implementation at compile time.
var _ Strategy = (*bars)(nil)
