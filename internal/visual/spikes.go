package visual

import (
	"math"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// Mirrored spikes mode constants.
const (
	spikeSpan      = 520.0 // total horizontal extent
	spikeFloor     = 4.0   // minimum half-height of a spike
	spikeAmpScale  = 190.0 // half-height per unit of bin magnitude
	spikeHueDrift  = 0.045 // hue revolutions per second
	spikeHueSpread = 0.55  // hue revolutions across the full width
	spikeTipBlend  = 0.55  // how far tip points are pushed toward white
)

// spikes renders a symmetric field of vertical line segments mirrored around
// the horizontal axis, with a point cloud marking the segment tips. Both are
// per-vertex colored with a hue that drifts with position and time, blended
// toward the active color.
type spikes struct {
	preset   Preset
	segments *scene.Object
	tips     *scene.Object
	objects  []*scene.Object
}

func newSpikes(p Preset) *spikes {
	s := &spikes{preset: p}

	s.segments = scene.NewSegments(p.SpikeCount, scene.SpikeMeta{Count: p.SpikeCount})
	s.tips = scene.NewColoredPoints(p.SpikeCount*2, scene.SpikeMeta{Count: p.SpikeCount})
	s.objects = []*scene.Object{s.segments, s.tips}

	return s
}

func (s *spikes) Mode() domain.VisualMode { return domain.ModeMirroredSpikes }

func (s *spikes) Objects() []*scene.Object { return s.objects }

func (s *spikes) Update(in Input) {
	n := s.preset.SpikeCount
	resolution := in.Frame.Resolution()
	white := domain.RGB{R: 1, G: 1, B: 1}

	for i := 0; i < n; i++ {
		pos := float64(i) / float64(n-1)

		// Symmetric distance from center selects the bin, so the lowest
		// frequencies sit in the middle and mirror outward.
		centerDist := math.Abs(pos-0.5) * 2
		amp := in.Frame.Bin(binAt(centerDist, resolution))
		half := spikeFloor + amp*spikeAmpScale

		x := (pos - 0.5) * spikeSpan
		z := math.Sin(in.Elapsed*0.7+pos*math.Pi*2) * 18

		top := scene.Vec3{X: x, Y: half, Z: z}
		bottom := scene.Vec3{X: x, Y: -half, Z: z}

		s.segments.Positions[i*2] = top
		s.segments.Positions[i*2+1] = bottom

		hue := pos*spikeHueSpread + in.Elapsed*spikeHueDrift
		col := hslToRGB(hue, 0.85, 0.45+amp*0.25)
		col = col.Blend(in.Active, 0.45)

		s.segments.Colors[i*2] = col
		s.segments.Colors[i*2+1] = col

		// Tip points are pushed further toward white for the highlight.
		tipCol := col.Blend(white, spikeTipBlend)
		s.tips.Positions[i*2] = top
		s.tips.Positions[i*2+1] = bottom
		s.tips.Colors[i*2] = tipCol
		s.tips.Colors[i*2+1] = tipCol
	}
	s.tips.Visible = n * 2
}

func (s *spikes) Release() {
	releaseAll(s.objects)
}

// Verify interface implementation at compile time.
var _ Strategy = (*spikes)(nil)
