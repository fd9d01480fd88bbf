package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/auravis/internal/domain"
)

func TestCamera_ProjectCentersOrigin(t *testing.T) {
	cam := NewCamera(500)

	sx, sy, scale, ok := cam.Project(Vec3{}, 200, 100)

	require.True(t, ok)
	assert.Equal(t, 100.0, sx)
	assert.Equal(t, 50.0, sy)
	assert.Greater(t, scale, 0.0)
}

func TestCamera_ProjectYAxisPointsUp(t *testing.T) {
	cam := NewCamera(500)

	_, sy, _, ok := cam.Project(Vec3{Y: 10}, 200, 200)

	require.True(t, ok)
	assert.Less(t, sy, 100.0, "+Y in scene space is up on screen")
}

func TestCamera_CullsBehindNearPlane(t *testing.T) {
	cam := NewCamera(100)

	_, _, _, ok := cam.Project(Vec3{Z: 200}, 100, 100)
	assert.False(t, ok, "points behind the camera are culled")

	_, _, _, ok = cam.Project(Vec3{Z: 99.5}, 100, 100)
	assert.False(t, ok, "points closer than the near plane are culled")
}

func TestCamera_PerspectiveScaleShrinksWithDepth(t *testing.T) {
	cam := NewCamera(500)

	_, _, near, ok1 := cam.Project(Vec3{Z: 100}, 100, 100)
	_, _, far, ok2 := cam.Project(Vec3{Z: -100}, 100, 100)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Greater(t, near, far, "closer points project larger")
}

func TestCamera_Approach(t *testing.T) {
	cam := NewCamera(500)

	cam.Approach(400, 0.5)
	assert.Equal(t, 450.0, cam.Distance)

	// Fixed point: approaching the current distance changes nothing.
	cam.Approach(450, 0.5)
	assert.Equal(t, 450.0, cam.Distance)
}

func TestObjectConstructors(t *testing.T) {
	loop := NewLineLoop(256, domain.RGB{}, RingMeta{Layer: 3})
	assert.Equal(t, KindLineLoop, loop.Kind)
	assert.Equal(t, 256, loop.VertexCount())
	assert.Nil(t, loop.Colors)

	segs := NewSegments(48, SpikeMeta{Count: 48})
	assert.Equal(t, 96, segs.VertexCount())
	assert.Len(t, segs.Colors, 96)

	points := NewPoints(64, domain.RGB{R: 1}, RingMeta{})
	assert.Equal(t, 64, points.VertexCount())
	assert.Zero(t, points.Visible)

	box := NewBox(Vec3{X: 4, Y: 8, Z: 4}, domain.RGB{}, BarMeta{Index: 1})
	assert.Equal(t, KindBox, box.Kind)
	assert.Zero(t, box.VertexCount())
}

func TestObject_Release(t *testing.T) {
	obj := NewLineStrip(10, domain.RGB{}, WaveMeta{})
	require.False(t, obj.Released())

	obj.Release()

	assert.True(t, obj.Released())
	assert.Nil(t, obj.Positions)
	assert.Zero(t, obj.Visible)
}

// renderedPixels counts pixels differing from the renderer background.
func renderedPixels(img *image.RGBA, bg color.RGBA) int {
	count := 0
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				count++
			}
		}
	}
	return count
}

func TestRenderer_PointsVisibleCount(t *testing.T) {
	r := NewRenderer()
	cam := NewCamera(500)
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	points := NewPoints(8, domain.RGB{R: 1, G: 1, B: 1}, RingMeta{})
	for i := range points.Positions {
		points.Positions[i] = Vec3{X: float64(i-4) * 30}
	}

	// Nothing visible: the frame stays at the background color.
	points.Visible = 0
	r.Render(img, cam, []*Object{points})
	assert.Zero(t, renderedPixels(img, r.Background), "hidden slots must not render")

	points.Visible = 3
	r.Render(img, cam, []*Object{points})
	some := renderedPixels(img, r.Background)
	assert.Greater(t, some, 0)

	points.Visible = 8
	r.Render(img, cam, []*Object{points})
	all := renderedPixels(img, r.Background)
	assert.Greater(t, all, some, "more visible slots render more pixels")
}

func TestRenderer_SkipsReleasedObjects(t *testing.T) {
	r := NewRenderer()
	cam := NewCamera(500)
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	strip := NewLineStrip(4, domain.RGB{R: 1, G: 1, B: 1}, WaveMeta{})
	for i := range strip.Positions {
		strip.Positions[i] = Vec3{X: float64(i) * 10}
	}
	strip.Release()

	r.Render(img, cam, []*Object{strip, nil})

	assert.Zero(t, renderedPixels(img, r.Background), "released objects leave no draw calls")
}

func TestRenderer_DrawsLineLoop(t *testing.T) {
	r := NewRenderer()
	cam := NewCamera(500)
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	loop := NewLineLoop(4, domain.RGB{R: 1, G: 1, B: 1}, RingMeta{})
	loop.Positions[0] = Vec3{X: -20, Y: -20}
	loop.Positions[1] = Vec3{X: 20, Y: -20}
	loop.Positions[2] = Vec3{X: 20, Y: 20}
	loop.Positions[3] = Vec3{X: -20, Y: 20}

	r.Render(img, cam, []*Object{loop})

	assert.Greater(t, renderedPixels(img, r.Background), 0)
}

func TestRenderer_DrawsBox(t *testing.T) {
	r := NewRenderer()
	cam := NewCamera(500)
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))

	box := NewBox(Vec3{X: 20, Y: 40, Z: 10}, domain.RGB{R: 1}, BarMeta{})
	box.Center = Vec3{Y: 20}

	r.Render(img, cam, []*Object{box})

	assert.Greater(t, renderedPixels(img, r.Background), 0)
}

func TestVec3_Math(t *testing.T) {
	v := Vec3{X: 3, Y: 4}

	assert.Equal(t, 5.0, v.Length())
	assert.Equal(t, Vec3{X: 6, Y: 8}, v.Scale(2))
	assert.Equal(t, Vec3{X: 4, Y: 4}, v.Add(Vec3{X: 1}))
	assert.Equal(t, Vec3{X: 2, Y: 4}, v.Sub(Vec3{X: 1}))
}
