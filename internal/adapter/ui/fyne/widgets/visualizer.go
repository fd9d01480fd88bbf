// Package widgets provides custom Fyne widgets for the AuraVis application.
package widgets

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/tejashwikalptaru/auravis/internal/visual"
)

// DefaultFrameRate is the visualizer refresh rate in frames per second.
const DefaultFrameRate = 30

// Visualizer is a widget that renders a visual session into a raster.
// Each refresh ticks the session once, advancing physics and camera state
// exactly one frame per displayed frame.
type Visualizer struct {
	widget.BaseWidget

	raster  *canvas.Raster
	session *visual.Session

	mu  sync.Mutex
	img *image.RGBA

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
	started  bool
}

// NewVisualizer creates a visualizer widget for the given session. The
// session stays owned by the caller; Stop does not close it.
func NewVisualizer(session *visual.Session) *Visualizer {
	v := &Visualizer{
		session: session,
		stop:    make(chan struct{}),
	}

	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)

	return v
}

// CreateRenderer implements fyne.Widget.
func (v *Visualizer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize returns a minimal size so the widget expands to fill available
// space.
func (v *Visualizer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

// Start begins the refresh ticker. Calling Start on a running widget is a
// no-op.
func (v *Visualizer) Start() {
	v.mu.Lock()
	if v.started {
		v.mu.Unlock()
		return
	}
	v.started = true
	v.wg.Add(1)
	v.mu.Unlock()

	go func() {
		defer v.wg.Done()
		ticker := time.NewTicker(time.Second / DefaultFrameRate)
		defer ticker.Stop()

		for {
			select {
			case <-v.stop:
				return

			case <-ticker.C:
				v.raster.Refresh()
			}
		}
	}()
}

// Stop ends the refresh ticker and waits for it to exit. Safe to call more
// than once.
func (v *Visualizer) Stop() {
	v.stopOnce.Do(func() {
		v.mu.Lock()
		started := v.started
		v.started = false
		v.mu.Unlock()

		if started {
			close(v.stop)
			v.wg.Wait()
		}
	})
}

// draw is the raster generator: it reuses the frame buffer across frames
// and lets the session render into it.
func (v *Visualizer) draw(w, h int) image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()

	if w < 1 || h < 1 {
		w, h = 1, 1
	}
	if v.img == nil || v.img.Bounds().Dx() != w || v.img.Bounds().Dy() != h {
		v.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	v.session.Tick(v.img)

	return v.img
}
