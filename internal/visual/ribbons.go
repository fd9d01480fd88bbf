package visual

import (
	"math"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/scene"
)

// Oscilloscope ribbons mode constants.
const (
	ribbonSpan        = 560.0 // horizontal extent of each ribbon
	ribbonGroupGap    = 120.0 // vertical distance between groups
	ribbonWaveScale   = 110.0 // amplitude of the waveform-driven group
	ribbonBandScale   = 90.0  // amplitude of the spectrum-driven groups
	ribbonCarrierFreq = 3.0   // sinusoid crests across a spectrum ribbon
	ribbonScrollSpeed = 2.2   // carrier phase speed in rad/s
	ribbonNodeStride  = 12    // base-layer sampling interval for highlights
	ribbonNodeCutoff  = 0.18  // amplitude a node must exceed to light up
	gridLinesX        = 9
	gridLinesY        = 5
	gridExtent        = 330.0
)

// ribbons renders stacked groups of parallel line strips. The first group
// traces the raw time-domain waveform; the remaining groups carry a sinusoid
// whose amplitude follows one spectral band each. A fixed per-layer spread
// keeps the parallel strips visually desynchronized, and a background grid
// sits behind everything.
type ribbons struct {
	preset  Preset
	grid    *scene.Object
	strips  [][]*scene.Object // [group][layer]
	nodes   []*scene.Object   // per group
	objects []*scene.Object
}

func newRibbons(p Preset) *ribbons {
	r := &ribbons{preset: p}

	r.grid = buildGrid()
	r.objects = append(r.objects, r.grid)

	r.strips = make([][]*scene.Object, p.RibbonGroups)
	r.nodes = make([]*scene.Object, p.RibbonGroups)
	for g := 0; g < p.RibbonGroups; g++ {
		r.strips[g] = make([]*scene.Object, p.RibbonLayers)
		for l := 0; l < p.RibbonLayers; l++ {
			meta := scene.RibbonMeta{
				Group:  g,
				Layer:  l,
				Spread: (float64(l) - float64(p.RibbonLayers-1)/2) * p.RibbonSpread,
				Phase:  float64(l)*0.5 + float64(g)*1.3,
			}
			strip := scene.NewLineStrip(p.RibbonPoints, domain.RGB{}, meta)
			r.strips[g][l] = strip
			r.objects = append(r.objects, strip)
		}

		node := scene.NewPoints(p.RibbonHighlightMax, highlightTint, scene.RibbonMeta{Group: g})
		r.nodes[g] = node
		r.objects = append(r.objects, node)
	}

	return r
}

// buildGrid constructs the static background grid as one segment array.
func buildGrid() *scene.Object {
	count := gridLinesX + gridLinesY
	grid := &scene.Object{
		Kind:      scene.KindSegments,
		Positions: make([]scene.Vec3, count*2),
		Tint:      domain.RGB{R: 0.08, G: 0.1, B: 0.16},
	}

	i := 0
	for x := 0; x < gridLinesX; x++ {
		fx := (float64(x)/float64(gridLinesX-1) - 0.5) * 2 * gridExtent
		grid.Positions[i] = scene.Vec3{X: fx, Y: -gridExtent, Z: -200}
		grid.Positions[i+1] = scene.Vec3{X: fx, Y: gridExtent, Z: -200}
		i += 2
	}
	for y := 0; y < gridLinesY; y++ {
		fy := (float64(y)/float64(gridLinesY-1) - 0.5) * 2 * gridExtent
		grid.Positions[i] = scene.Vec3{X: -gridExtent, Y: fy, Z: -200}
		grid.Positions[i+1] = scene.Vec3{X: gridExtent, Y: fy, Z: -200}
		i += 2
	}

	return grid
}

func (r *ribbons) Mode() domain.VisualMode { return domain.ModeOscilloscopeRibbons }

func (r *ribbons) Objects() []*scene.Object { return r.objects }

func (r *ribbons) Update(in Input) {
	p := r.preset
	resolution := in.Frame.Resolution()

	for g := 0; g < p.RibbonGroups; g++ {
		groupY := (float64(g) - float64(p.RibbonGroups-1)/2) * -ribbonGroupGap

		for l, strip := range r.strips[g] {
			meta := strip.Meta.(scene.RibbonMeta)
			atten := 1.0 - float64(l)*0.35/float64(p.RibbonLayers)

			for i := range strip.Positions {
				pos := float64(i) / float64(len(strip.Positions)-1)
				x := (pos - 0.5) * ribbonSpan

				var y float64
				if g == 0 {
					// First group traces the raw waveform.
					sample := in.Frame.Sample(int(pos * float64(resolution-1)))
					y = sample * ribbonWaveScale * atten
				} else {
					// Other groups carry a sinusoid modulated by the
					// group's spectral band.
					bandPos := (float64(g-1) + pos) / float64(p.RibbonGroups-1)
					amp := in.Frame.Bin(binAt(bandPos, resolution))
					y = math.Sin(pos*ribbonCarrierFreq*2*math.Pi+in.Elapsed*ribbonScrollSpeed+meta.Phase) *
						amp * ribbonBandScale * atten
				}

				strip.Positions[i] = scene.Vec3{
					X: x,
					Y: groupY + y + meta.Spread,
					Z: float64(l) * 3,
				}
			}

			b := 0.5 + 0.5*atten
			target := domain.RGB{R: in.Active.R * b, G: in.Active.G * b, B: in.Active.B * b}
			strip.Tint = strip.Tint.Approach(target, p.ColorSmoothing)
		}

		r.updateNodes(g)
	}

	// The grid eases toward a dim shade of the active color.
	gridTarget := domain.RGB{R: in.Active.R * 0.12, G: in.Active.G * 0.12, B: in.Active.B * 0.12}
	r.grid.Tint = r.grid.Tint.Approach(gridTarget, p.ColorSmoothing)
}

// updateNodes samples every ribbonNodeStride-th point of the group's base
// layer and lights a highlight node where the displacement from the group
// centerline exceeds the cutoff. Unused fixed-size slots stay invisible.
func (r *ribbons) updateNodes(group int) {
	p := r.preset
	base := r.strips[group][0]
	node := r.nodes[group]
	meta := base.Meta.(scene.RibbonMeta)
	groupY := (float64(group) - float64(p.RibbonGroups-1)/2) * -ribbonGroupGap

	// Rest position of the base layer, so the gate measures only the
	// audio-driven term; normalization matches the scale the group uses.
	rest := groupY + meta.Spread
	scale := ribbonWaveScale
	if group > 0 {
		scale = ribbonBandScale
	}

	count := 0
	for i := 0; i < len(base.Positions); i += ribbonNodeStride {
		if count >= len(node.Positions) {
			break
		}
		displacement := math.Abs(base.Positions[i].Y-rest) / scale
		if displacement < ribbonNodeCutoff {
			continue
		}
		node.Positions[count] = base.Positions[i]
		count++
	}
	node.Visible = count
}

func (r *ribbons) Release() {
	releaseAll(r.objects)
}

// Verify interface implementation at compile time.
var _ Strategy = (*ribbons)(nil)
