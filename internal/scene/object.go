package scene

import (
	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// Kind identifies how an object's vertex buffer is interpreted by the rasterizer.
type Kind int

// Available object kinds.
const (
	// KindLineLoop connects consecutive points and closes the loop back to
	// the first point.
	KindLineLoop Kind = iota

	// KindLineStrip connects consecutive points without closing.
	KindLineStrip

	// KindSegments interprets the buffer as independent point pairs.
	KindSegments

	// KindPoints draws each point as a small screen-space square.
	KindPoints

	// KindBox draws an axis-aligned box at Center with dimensions Size.
	// Boxes ignore the Positions buffer.
	KindBox
)

// Meta is the typed per-object metadata record, set once at build time and
// read every frame by the mode update procedures. Each mode attaches its own
// variant; the empty interface method keeps the set closed.
type Meta interface {
	isMeta()
}

// RingMeta is attached to ring line loops and their highlight point clouds.
type RingMeta struct {
	Group       int     // ring group (0 or 1)
	Layer       int     // concentric layer index within the group
	LayerOffset float64 // radial offset desynchronizing the layer's ripple
	Phase       float64 // per-object time phase offset
}

func (RingMeta) isMeta() {}

// SpikeMeta is attached to the mirrored spike segment array and point cloud.
type SpikeMeta struct {
	Count int // number of spike samples
}

func (SpikeMeta) isMeta() {}

// RibbonMeta is attached to oscilloscope ribbon strips and highlight clouds.
type RibbonMeta struct {
	Group  int     // frequency band group
	Layer  int     // parallel layer within the group
	Spread float64 // fixed vertical spread between layers
	Phase  float64 // per-layer time phase offset
}

func (RibbonMeta) isMeta() {}

// BarMeta is attached to EQ bar boxes and their peak caps.
type BarMeta struct {
	Index int // bar index, left to right
}

func (BarMeta) isMeta() {}

// WaveMeta is attached to volumetric wave layers.
type WaveMeta struct {
	Layer  int     // depth layer index
	Phase  float64 // per-layer jitter phase
	Offset float64 // Z offset of this layer
}

func (WaveMeta) isMeta() {}

// Object is a mode-owned drawable. Its buffers are sized once at mode build
// time and never resized; the frame update engine rewrites every element it
// owns every frame. Objects are exclusively owned by the active mode and are
// never shared across modes.
type Object struct {
	Kind Kind

	// Positions is the dynamic vertex buffer. Fixed length for the lifetime
	// of the object (nil for KindBox).
	Positions []Vec3

	// Colors optionally holds one RGB per vertex. When nil the rasterizer
	// uses Tint for the whole object.
	Colors []domain.RGB

	// Tint is the material color used when Colors is nil.
	Tint domain.RGB

	// Visible bounds how many points of a KindPoints buffer are drawn this
	// frame. Slots at or beyond Visible are not rendered, which is how
	// highlight clouds hide unused fixed-size slots. Ignored (all vertices
	// drawn) for line and box kinds.
	Visible int

	// Center and Size position a KindBox object. Other kinds ignore them.
	Center Vec3
	Size   Vec3

	// Meta is the typed per-mode metadata record, set at build time.
	Meta Meta

	released bool
}

// NewLineLoop creates a closed line loop with n vertices.
func NewLineLoop(n int, tint domain.RGB, meta Meta) *Object {
	return &Object{
		Kind:      KindLineLoop,
		Positions: make([]Vec3, n),
		Tint:      tint,
		Meta:      meta,
	}
}

// NewLineStrip creates an open line strip with n vertices.
func NewLineStrip(n int, tint domain.RGB, meta Meta) *Object {
	return &Object{
		Kind:      KindLineStrip,
		Positions: make([]Vec3, n),
		Tint:      tint,
		Meta:      meta,
	}
}

// NewSegments creates a segment array holding n independent segments
// (2n vertices) with per-vertex colors.
func NewSegments(n int, meta Meta) *Object {
	return &Object{
		Kind:      KindSegments,
		Positions: make([]Vec3, n*2),
		Colors:    make([]domain.RGB, n*2),
		Meta:      meta,
	}
}

// NewPoints creates a point cloud with capacity n and zero visible points.
func NewPoints(n int, tint domain.RGB, meta Meta) *Object {
	return &Object{
		Kind:      KindPoints,
		Positions: make([]Vec3, n),
		Tint:      tint,
		Visible:   0,
		Meta:      meta,
	}
}

// NewColoredPoints creates a point cloud with per-vertex colors, all visible.
func NewColoredPoints(n int, meta Meta) *Object {
	return &Object{
		Kind:      KindPoints,
		Positions: make([]Vec3, n),
		Colors:    make([]domain.RGB, n),
		Visible:   n,
		Meta:      meta,
	}
}

// NewBox creates a box instance at the origin.
func NewBox(size Vec3, tint domain.RGB, meta Meta) *Object {
	return &Object{
		Kind: KindBox,
		Size: size,
		Tint: tint,
		Meta: meta,
	}
}

// VertexCount returns the length of the position buffer.
func (o *Object) VertexCount() int {
	return len(o.Positions)
}

// Release drops the object's buffers. After release the object must not be
// rendered or updated; mode switches release every object of the outgoing
// mode before the next tick can observe the scene.
func (o *Object) Release() {
	o.Positions = nil
	o.Colors = nil
	o.Visible = 0
	o.released = true
}

// Released reports whether Release has been called.
func (o *Object) Released() bool {
	return o.released
}
