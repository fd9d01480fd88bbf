package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
)

// DefaultThemeInterval is how long each palette color stays active. The
// renderer interpolates toward the active color, so longer intervals give a
// slow ambient drift rather than abrupt recoloring.
const DefaultThemeInterval = 12 * time.Second

// themePalette is the cycle of active colors. Hues sit apart enough that the
// smoothed transition between neighbors stays visible.
var themePalette = []domain.RGB{
	{R: 0.36, G: 0.56, B: 0.99}, // electric blue
	{R: 0.70, G: 0.32, B: 0.95}, // violet
	{R: 0.95, G: 0.35, B: 0.55}, // magenta rose
	{R: 0.98, G: 0.62, B: 0.25}, // amber
	{R: 0.34, G: 0.88, B: 0.58}, // spring green
	{R: 0.28, G: 0.85, B: 0.92}, // cyan
}

// ThemeService advances the visualizer's active color through a fixed
// palette on a timer, publishing ThemeColorChanged for the UI layer.
//
// Thread-safety: all operations are thread-safe.
type ThemeService struct {
	// Dependencies (injected)
	logger *slog.Logger
	bus    ports.EventBus

	// State
	interval time.Duration
	index    int

	// Concurrency control
	mu      sync.RWMutex
	stop    chan struct{}
	running bool
	wg      sync.WaitGroup
}

// NewThemeService creates a theme service. Call Start to begin cycling.
func NewThemeService(logger *slog.Logger, bus ports.EventBus, interval time.Duration) *ThemeService {
	if interval <= 0 {
		interval = DefaultThemeInterval
	}

	return &ThemeService{
		logger:   logger,
		bus:      bus,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// ActiveColor returns the current palette color.
func (s *ThemeService) ActiveColor() domain.RGB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return themePalette[s.index]
}

// Advance moves to the next palette color immediately and publishes it.
func (s *ThemeService) Advance() {
	s.mu.Lock()
	s.index = (s.index + 1) % len(themePalette)
	color := themePalette[s.index]
	s.mu.Unlock()

	s.bus.Publish(domain.NewThemeColorChangedEvent(color))
}

// Start publishes the initial color and begins the cycle timer.
func (s *ThemeService) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.bus.Publish(domain.NewThemeColorChangedEvent(s.ActiveColor()))
	s.logger.Debug("theme cycle started", slog.Duration("interval", s.interval))

	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return

			case <-ticker.C:
				s.Advance()
			}
		}
	}()
}

// Shutdown stops the cycle timer and waits for it to exit.
func (s *ThemeService) Shutdown() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stop)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Debug("theme cycle stopped")

	return nil
}
