package visual

import (
	"math"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// Rings mode constants.
const (
	ringGroups       = 2
	ringBaseRadius   = 70.0  // innermost radius of group 0
	ringGroupSpacing = 110.0 // radial gap between the two groups
	ringLayerSpacing = 4.5   // radial gap between concentric loops
	ringExpansion    = 55.0  // radial growth per unit of band energy
	ringAmpScale     = 42.0  // radial growth per unit of bin magnitude
	ringRippleFreq   = 1.6   // ripple speed in rad/s
	ringAngularFreq  = 5.0   // ripple crests around the circle
	ringWobbleDepth  = 7.0   // Z wobble amplitude
)

// rings renders two groups of concentric line loops whose radii breathe with
// band energy and ripple with per-layer phase offsets. Local radius extrema
// of each group's base loop are promoted to a highlight point cloud.
type rings struct {
	preset  Preset
	loops   [ringGroups][]*scene.Object
	bright  [ringGroups][]float64 // per-loop brightness, set at build
	spots   [ringGroups]*scene.Object
	objects []*scene.Object

	// scratch buffers, allocated once
	radii   []float64
	extrema []int
}

func newRings(p Preset) *rings {
	r := &rings{
		preset:  p,
		radii:   make([]float64, p.RingPoints),
		extrema: make([]int, 0, p.RingPoints),
	}

	for g := 0; g < ringGroups; g++ {
		r.loops[g] = make([]*scene.Object, p.RingLayers)
		r.bright[g] = make([]float64, p.RingLayers)
		for l := 0; l < p.RingLayers; l++ {
			meta := scene.RingMeta{
				Group:       g,
				Layer:       l,
				LayerOffset: 3.0 + float64(l)*1.4,
				Phase:       float64(l)*0.35 + float64(g)*1.7,
			}
			loop := scene.NewLineLoop(p.RingPoints, domain.RGB{}, meta)
			r.bright[g][l] = 0.4 + 0.6*float64(l+1)/float64(p.RingLayers)
			r.loops[g][l] = loop
			r.objects = append(r.objects, loop)
		}

		spot := scene.NewPoints(p.RingHighlightMax, highlightTint, scene.RingMeta{Group: g})
		r.spots[g] = spot
		r.objects = append(r.objects, spot)
	}

	return r
}

func (r *rings) Mode() domain.VisualMode { return domain.ModeRings }

func (r *rings) Objects() []*scene.Object { return r.objects }

func (r *rings) Update(in Input) {
	resolution := in.Frame.Resolution()
	energies := [ringGroups]float64{in.Frame.BassEnergy(), in.Frame.TrebleEnergy()}

	for g := 0; g < ringGroups; g++ {
		groupBase := ringBaseRadius + float64(g)*ringGroupSpacing
		groupZ := -60.0 * float64(g)

		for l, loop := range r.loops[g] {
			meta := loop.Meta.(scene.RingMeta)
			base := groupBase + float64(l)*ringLayerSpacing + energies[g]*ringExpansion

			for i := range loop.Positions {
				pos := float64(i) / float64(len(loop.Positions))
				angle := pos * 2 * math.Pi

				amp := in.Frame.Bin(binAt(pos, resolution)) * ringAmpScale
				ripple := math.Sin(in.Elapsed*ringRippleFreq+angle*ringAngularFreq+meta.Phase) * meta.LayerOffset
				radius := base + amp + ripple

				loop.Positions[i] = scene.Vec3{
					X: math.Cos(angle) * radius,
					Y: math.Sin(angle) * radius,
					Z: groupZ + math.Sin(in.Elapsed*0.9+angle*2+meta.Phase)*ringWobbleDepth,
				}

				// Base layer radii feed the extrema detector below.
				if l == 0 {
					r.radii[i] = radius
				}
			}

			b := r.bright[g][l]
			target := domain.RGB{R: in.Active.R * b, G: in.Active.G * b, B: in.Active.B * b}
			loop.Tint = loop.Tint.Approach(target, r.preset.ColorSmoothing)
		}

		r.updateHighlights(g, groupZ)
	}
}

// updateHighlights promotes local radius extrema of the group's base loop to
// the highlight cloud. Slots beyond the detected count stay invisible; the
// buffer itself is fixed-size and never resized.
func (r *rings) updateHighlights(group int, groupZ float64) {
	spot := r.spots[group]
	r.extrema = wrappedExtrema(r.radii, r.extrema[:0])

	count := 0
	for _, i := range r.extrema {
		if count >= len(spot.Positions) {
			break
		}
		angle := float64(i) / float64(len(r.radii)) * 2 * math.Pi
		radius := r.radii[i]
		spot.Positions[count] = scene.Vec3{
			X: math.Cos(angle) * radius,
			Y: math.Sin(angle) * radius,
			Z: groupZ,
		}
		count++
	}
	spot.Visible = count
}

func (r *rings) Release() {
	releaseAll(r.objects)
}

// wrappedExtrema appends to out the indices of strict local maxima and minima
// of the cyclic sequence values, comparing each sample to both neighbors with
// wraparound. A flat sequence yields no extrema.
func wrappedExtrema(values []float64, out []int) []int {
	n := len(values)
	if n < 3 {
		return out
	}
	for i := 0; i < n; i++ {
		prev := values[(i-1+n)%n]
		next := values[(i+1)%n]
		v := values[i]
		if (v > prev && v > next) || (v < prev && v < next) {
			out = append(out, i)
		}
	}
	return out
}

// Verify interface implementation at compile time.
var _ Strategy = (*rings)(nil)
