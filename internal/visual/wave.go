package visual

import (
	"math"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// Volumetric wave mode constants.
const (
	waveSpan       = 560.0 // horizontal extent
	waveAmpScale   = 150.0 // height per unit of bin magnitude
	waveLayerDepth = 16.0  // Z distance between layers
	waveJitterAmp  = 3.5   // per-point time jitter amplitude
	waveJitterFreq = 2.8   // jitter speed in rad/s
)

// wave renders a stack of mirrored line strips forming a volumetric waveform.
// Each strip holds the top silhouette in its first half and the bottom mirror
// in its second half, tapered to zero at both ends so the wave pinches shut
// at its edges. Per-layer color gradients are precomputed at build time.
type wave struct {
	preset  Preset
	strips  []*scene.Object
	depths  []float64 // per-layer brightness, set at build
	objects []*scene.Object
}

func newWave(p Preset) *wave {
	w := &wave{
		preset: p,
		strips: make([]*scene.Object, p.WaveLayers),
		depths: make([]float64, p.WaveLayers),
	}

	for l := 0; l < p.WaveLayers; l++ {
		meta := scene.WaveMeta{
			Layer:  l,
			Phase:  float64(l) * 0.6,
			Offset: -float64(l) * waveLayerDepth,
		}
		// 2× points: mirrored top and bottom outlines in one buffer.
		strip := scene.NewLineStrip(p.WavePoints*2, domain.RGB{}, meta)
		w.depths[l] = 1.0 - 0.75*float64(l)/float64(p.WaveLayers)
		w.strips[l] = strip
		w.objects = append(w.objects, strip)
	}

	return w
}

func (w *wave) Mode() domain.VisualMode { return domain.ModeVolumetricWave }

func (w *wave) Objects() []*scene.Object { return w.objects }

func (w *wave) Update(in Input) {
	p := w.preset
	resolution := in.Frame.Resolution()

	for l, strip := range w.strips {
		meta := strip.Meta.(scene.WaveMeta)
		n := p.WavePoints

		for i := 0; i < n; i++ {
			pos := float64(i) / float64(n-1)

			// Signed distance from center picks the bin; the sine taper
			// zeroes the wave at both ends and peaks at the center.
			centerDist := math.Abs(pos-0.5) * 2
			amp := in.Frame.Bin(binAt(centerDist, resolution))
			taper := math.Sin(pos * math.Pi)
			height := amp * waveAmpScale * taper

			x := (pos - 0.5) * waveSpan
			jitterTop := math.Sin(in.Elapsed*waveJitterFreq+float64(i)*0.21+meta.Phase) * waveJitterAmp * taper
			jitterBot := math.Cos(in.Elapsed*waveJitterFreq+float64(i)*0.17+meta.Phase) * waveJitterAmp * taper

			strip.Positions[i] = scene.Vec3{
				X: x,
				Y: height + jitterTop,
				Z: meta.Offset,
			}
			// Bottom mirror runs right to left so the strip stays connected.
			strip.Positions[2*n-1-i] = scene.Vec3{
				X: x,
				Y: -height + jitterBot,
				Z: meta.Offset,
			}
		}

		b := w.depths[l]
		target := domain.RGB{R: in.Active.R * b, G: in.Active.G * b, B: in.Active.B * b}
		strip.Tint = strip.Tint.Approach(target, p.ColorSmoothing)
	}
}

func (w *wave) Release() {
	releaseAll(w.objects)
}

// Verify interface implementation at compile time.
var _ Strategy = (*wave)(nil)
