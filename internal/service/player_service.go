// Package service provides business logic for the AuraVis application.
package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/auravis/internal/domain"
	"github.com/tejashwikalptaru/auravis/internal/ports"
)

// PlayerService orchestrates audio playback.
// It owns the loaded track, volume and mute state, publishes playback events
// and runs a progress ticker while a track plays.
// All operations are thread-safe via sync.RWMutex.
type PlayerService struct {
	// Dependencies (injected)
	logger *slog.Logger
	engine ports.AudioEngine
	bus    ports.EventBus

	// State
	currentTrack   *domain.Track
	volume         float64
	savedVolume    float64 // Volume before mute
	isMuted        bool
	wasPlaying     bool // True while we believe the engine is playing
	updateInterval time.Duration

	// Concurrency control
	mu            sync.RWMutex
	stopUpdate    chan struct{}
	updateRunning bool
	updateWg      sync.WaitGroup
}

// NewPlayerService creates a new player service and starts its progress
// ticker.
func NewPlayerService(
	logger *slog.Logger,
	engine ports.AudioEngine,
	bus ports.EventBus,
) *PlayerService {
	service := &PlayerService{
		logger:         logger,
		engine:         engine,
		bus:            bus,
		volume:         0.8, // Default 80% volume
		updateInterval: 333 * time.Millisecond,
		stopUpdate:     make(chan struct{}),
	}

	logger.Debug("player service initialized")

	service.startUpdateRoutine()

	return service
}

// Open loads a track for playback, replacing any current one.
func (s *PlayerService) Open(filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("opening track", slog.String("file_path", filePath))

	track, err := s.engine.Load(filePath)
	if err != nil {
		s.logger.Warn("failed to load track", slog.Any("error", err))
		s.bus.Publish(domain.NewTrackErrorEvent(filePath, err))
		return err
	}

	if err := s.engine.SetVolume(s.effectiveVolume()); err != nil {
		s.logger.Warn("failed to apply volume", slog.Any("error", err))
	}

	s.currentTrack = &track
	s.wasPlaying = false

	s.bus.Publish(domain.NewTrackLoadedEvent(track))

	return nil
}

// Play starts or resumes playback of the loaded track.
func (s *PlayerService) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTrack == nil {
		return domain.ErrNoTrackLoaded
	}

	if s.engine.Status() == domain.StatusPlaying {
		return nil
	}

	if err := s.engine.Play(); err != nil {
		s.bus.Publish(domain.NewTrackErrorEvent(s.currentTrack.FilePath, err))
		return err
	}

	s.wasPlaying = true
	s.bus.Publish(domain.NewPlaybackStartedEvent(*s.currentTrack))

	return nil
}

// Pause pauses playback, keeping the position.
func (s *PlayerService) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTrack == nil {
		return domain.ErrNoTrackLoaded
	}

	if err := s.engine.Pause(); err != nil {
		return err
	}

	s.wasPlaying = false
	s.bus.Publish(domain.NewPlaybackPausedEvent(s.engine.Position()))

	return nil
}

// Toggle flips between play and pause. With a stopped track it starts
// playback from the beginning.
func (s *PlayerService) Toggle() error {
	if s.Status() == domain.StatusPlaying {
		return s.Pause()
	}
	return s.Play()
}

// Stop halts playback and rewinds to the beginning.
func (s *PlayerService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTrack == nil {
		return domain.ErrNoTrackLoaded
	}

	if err := s.engine.Stop(); err != nil {
		return err
	}

	s.wasPlaying = false
	s.bus.Publish(domain.NewPlaybackStoppedEvent())

	return nil
}

// Seek sets the playback position and publishes the resulting progress.
func (s *PlayerService) Seek(position time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTrack == nil {
		return domain.ErrNoTrackLoaded
	}

	if err := s.engine.Seek(position); err != nil {
		return err
	}

	s.bus.Publish(domain.NewTrackProgressEvent(position, s.engine.Duration()))

	return nil
}

// SetVolume sets the playback volume (0.0 to 1.0). While muted the value is
// remembered but not applied.
func (s *PlayerService) SetVolume(volume float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	s.volume = volume

	if !s.isMuted {
		if err := s.engine.SetVolume(volume); err != nil {
			return err
		}
	}

	s.bus.Publish(domain.NewVolumeChangedEvent(volume))

	return nil
}

// Volume returns the user-selected volume, ignoring mute.
func (s *PlayerService) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volume
}

// Mute mutes or unmutes playback without losing the selected volume.
func (s *PlayerService) Mute(mute bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isMuted == mute {
		return nil
	}

	s.isMuted = mute

	target := s.volume
	if mute {
		s.savedVolume = s.volume
		target = 0.0
	}

	return s.engine.SetVolume(target)
}

// IsMuted returns true if playback is muted.
func (s *PlayerService) IsMuted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isMuted
}

// Status returns the engine playback status.
func (s *PlayerService) Status() domain.PlaybackStatus {
	return s.engine.Status()
}

// CurrentTrack returns the loaded track and true, or false with no track.
func (s *PlayerService) CurrentTrack() (domain.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.currentTrack == nil {
		return domain.Track{}, false
	}
	return *s.currentTrack, true
}

// Shutdown stops the progress ticker and playback.
func (s *PlayerService) Shutdown() error {
	s.mu.Lock()
	if s.updateRunning {
		close(s.stopUpdate)
		s.updateRunning = false
	}
	s.mu.Unlock()

	// Wait for the ticker goroutine with no lock held.
	s.updateWg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentTrack == nil {
		return nil
	}
	s.currentTrack = nil
	s.wasPlaying = false

	return s.engine.Stop()
}

// effectiveVolume is the level to apply to the engine, honoring mute.
// Caller must hold the lock.
func (s *PlayerService) effectiveVolume() float64 {
	if s.isMuted {
		return 0.0
	}
	return s.volume
}

// startUpdateRoutine starts a goroutine that periodically publishes progress
// events and detects natural end of track.
func (s *PlayerService) startUpdateRoutine() {
	s.mu.Lock()
	if s.updateRunning {
		s.mu.Unlock()
		return
	}
	s.updateRunning = true
	s.updateWg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.updateWg.Done()
		ticker := time.NewTicker(s.updateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopUpdate:
				return

			case <-ticker.C:
				s.publishProgressUpdate()
			}
		}
	}()
}

// publishProgressUpdate publishes a progress event while a track is loaded,
// and a stopped event when a playing track drains to its end.
func (s *PlayerService) publishProgressUpdate() {
	s.mu.Lock()

	if s.currentTrack == nil {
		s.mu.Unlock()
		return
	}

	status := s.engine.Status()
	position := s.engine.Position()
	duration := s.engine.Duration()

	finished := s.wasPlaying && status == domain.StatusStopped
	if finished {
		s.wasPlaying = false
	}

	s.mu.Unlock()

	// Event bus is thread-safe; publish without the lock so handlers can
	// call back into the service.
	s.bus.Publish(domain.NewTrackProgressEvent(position, duration))
	if finished {
		s.logger.Debug("track finished")
		s.bus.Publish(domain.NewPlaybackStoppedEvent())
	}
}
