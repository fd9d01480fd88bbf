package scene

import (
	"image"
	"image/color"
	"math"

	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// Renderer rasterizes scene objects into an RGBA image through a camera.
// One Render call is one render submission; the tick loop issues exactly one
// per frame after all mode updates complete.
type Renderer struct {
	// Background is the clear color applied before drawing.
	Background color.RGBA
}

// NewRenderer creates a renderer with the default dark background.
func NewRenderer() *Renderer {
	return &Renderer{
		Background: color.RGBA{R: 6, G: 8, B: 16, A: 255},
	}
}

// Render clears the image and draws every object in order.
// Released objects are skipped.
func (r *Renderer) Render(img *image.RGBA, cam *Camera, objects []*Object) {
	r.fillBackground(img)

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}

	for _, obj := range objects {
		if obj == nil || obj.Released() {
			continue
		}
		switch obj.Kind {
		case KindLineLoop:
			r.drawPolyline(img, cam, obj, w, h, true)
		case KindLineStrip:
			r.drawPolyline(img, cam, obj, w, h, false)
		case KindSegments:
			r.drawSegments(img, cam, obj, w, h)
		case KindPoints:
			r.drawPoints(img, cam, obj, w, h)
		case KindBox:
			r.drawBox(img, cam, obj, w, h)
		}
	}
}

// fillBackground fills the image with the clear color.
func (r *Renderer) fillBackground(img *image.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, r.Background)
		}
	}
}

// drawPolyline draws a line strip, optionally closing it back to the start.
func (r *Renderer) drawPolyline(img *image.RGBA, cam *Camera, obj *Object, w, h int, closed bool) {
	n := len(obj.Positions)
	if n < 2 {
		return
	}

	last := n - 1
	if closed {
		last = n
	}

	for i := 0; i < last; i++ {
		j := (i + 1) % n
		x1, y1, _, ok1 := cam.Project(obj.Positions[i], w, h)
		x2, y2, _, ok2 := cam.Project(obj.Positions[j], w, h)
		if !ok1 || !ok2 {
			continue
		}
		r.drawLine(img, x1, y1, x2, y2, rgbaOf(obj.vertexColor(i)))
	}
}

// drawSegments draws independent point pairs.
func (r *Renderer) drawSegments(img *image.RGBA, cam *Camera, obj *Object, w, h int) {
	for i := 0; i+1 < len(obj.Positions); i += 2 {
		x1, y1, _, ok1 := cam.Project(obj.Positions[i], w, h)
		x2, y2, _, ok2 := cam.Project(obj.Positions[i+1], w, h)
		if !ok1 || !ok2 {
			continue
		}
		r.drawLine(img, x1, y1, x2, y2, rgbaOf(obj.vertexColor(i)))
	}
}

// drawPoints draws the first Visible points as small squares whose size
// tracks perspective scale.
func (r *Renderer) drawPoints(img *image.RGBA, cam *Camera, obj *Object, w, h int) {
	count := obj.Visible
	if count > len(obj.Positions) {
		count = len(obj.Positions)
	}

	for i := 0; i < count; i++ {
		sx, sy, scale, ok := cam.Project(obj.Positions[i], w, h)
		if !ok {
			continue
		}
		size := int(math.Max(1, 2.5*scale))
		if size > 6 {
			size = 6
		}
		r.fillSquare(img, int(sx), int(sy), size, rgbaOf(obj.vertexColor(i)))
	}
}

// drawBox draws a filled screen-space rectangle for a box instance.
func (r *Renderer) drawBox(img *image.RGBA, cam *Camera, obj *Object, w, h int) {
	sx, sy, scale, ok := cam.Project(obj.Center, w, h)
	if !ok {
		return
	}

	halfW := obj.Size.X * scale / 2
	halfH := obj.Size.Y * scale / 2
	if halfW < 0.5 {
		halfW = 0.5
	}
	if halfH < 0.5 {
		halfH = 0.5
	}

	col := rgbaOf(obj.Tint)
	bounds := img.Bounds()
	for y := int(sy - halfH); y <= int(sy+halfH); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := int(sx - halfW); x <= int(sx+halfW); x++ {
			if x >= bounds.Min.X && x < bounds.Max.X {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a pixel line between two screen points.
func (r *Renderer) drawLine(img *image.RGBA, x1, y1, x2, y2 float64, col color.RGBA) {
	bounds := img.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	steps := int(math.Max(math.Abs(dx), math.Abs(dy))) + 1

	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		px := int(x1 + dx*t)
		py := int(y1 + dy*t)
		if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
			img.SetRGBA(px, py, col)
		}
	}
}

// fillSquare draws a filled square centered on a screen point.
func (r *Renderer) fillSquare(img *image.RGBA, cx, cy, size int, col color.RGBA) {
	bounds := img.Bounds()
	for dy := -size / 2; dy <= size/2; dy++ {
		for dx := -size / 2; dx <= size/2; dx++ {
			px, py := cx+dx, cy+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.SetRGBA(px, py, col)
			}
		}
	}
}

// vertexColor returns the color for vertex i: the per-vertex color when the
// object has a color buffer, the material tint otherwise.
func (o *Object) vertexColor(i int) domain.RGB {
	if o.Colors != nil && i < len(o.Colors) {
		return o.Colors[i]
	}
	return o.Tint
}

// rgbaOf converts a normalized RGB to an opaque 8-bit color, clamping each
// component to [0, 1].
func rgbaOf(c domain.RGB) color.RGBA {
	return color.RGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: 255,
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
