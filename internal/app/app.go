// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/tejashwikalptaru/auravis/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/auravis/internal/adapter/audio/pcm"
	"github.com/tejashwikalptaru/auravis/internal/adapter/eventbus"
	fyneui "github.com/tejashwikalptaru/auravis/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/auravis/internal/logger"
	"github.com/tejashwikalptaru/auravis/internal/ports"
	"github.com/tejashwikalptaru/auravis/internal/service"
	"github.com/tejashwikalptaru/auravis/internal/visual"
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
//
// The Application struct is responsible for:
// - Creating and wiring all dependencies
// - Managing the application lifecycle (startup, shutdown)
// - Providing a clean entry point for main.go
type Application struct {
	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus    ports.EventBus
	audioEngine ports.AudioEngine

	// Visual state
	session *visual.Session

	// Services
	playerService *service.PlayerService
	themeService  *service.ThemeService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// SampleRate is the audio output sample rate
	SampleRate int

	// UseMockAudio selects the synthetic engine instead of real playback
	UseMockAudio bool

	// PresetName selects the built-in visual tuning preset
	PresetName string

	// PresetFile optionally loads a YAML preset file, overriding PresetName
	PresetFile string

	// ThemeInterval is how often the active color advances
	ThemeInterval time.Duration

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// TestFyneApp allows injecting a test Fyne app (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:         "com.auravis.app",
		SampleRate:    44100,
		UseMockAudio:  false,
		PresetName:    "classic",
		ThemeInterval: service.DefaultThemeInterval,
		LogLevel:      loggerCfg.Level,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	loggerCfg := logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	}
	app.logger = logger.NewLogger(loggerCfg)
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 3: Create an event bus
	syncBus := eventbus.NewSyncEventBus()
	syncBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = syncBus

	// Step 4: Create an audio engine
	if config.UseMockAudio {
		app.audioEngine = mock.NewEngine()
	} else {
		app.audioEngine = pcm.NewEngine(app.logger.With(slog.String("engine", "pcm")))
	}
	if err := app.audioEngine.Initialize(config.SampleRate); err != nil {
		return nil, fmt.Errorf("failed to initialize audio engine: %w", err)
	}

	// Step 5: Resolve the visual preset and create the session
	preset, err := resolvePreset(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve visual preset: %w", err)
	}
	app.session = visual.NewSession(
		app.audioEngine,
		preset,
		app.logger.With(slog.String("component", "visual")),
	)

	// Step 6: Create services (with dependency injection)
	app.playerService = service.NewPlayerService(
		app.logger.With(slog.String("service", "player")),
		app.audioEngine,
		app.eventBus,
	)

	app.themeService = service.NewThemeService(
		app.logger.With(slog.String("service", "theme")),
		app.eventBus,
		config.ThemeInterval,
	)

	// Step 7: Create UI
	app.mainWindow = fyneui.NewMainWindow(
		app.logger.With(slog.String("component", "window")),
		app.fyneApp,
		app.session,
	)

	// Step 8: Create Presenter and wire with UI
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.playerService,
		app.themeService,
		app.session,
		app.eventBus,
		app.mainWindow,
	)

	app.mainWindow.SetPresenter(app.presenter)

	return app, nil
}

// resolvePreset picks the visual tuning preset from config: an explicit
// YAML file wins over the built-in preset name.
func resolvePreset(config Config) (visual.Preset, error) {
	if config.PresetFile != "" {
		return visual.LoadPresetFile(config.PresetFile)
	}
	return visual.PresetByName(config.PresetName)
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("AuraVis started")

	a.themeService.Start()

	// Blocks until the window is closed.
	if err := a.mainWindow.Run(); err != nil {
		a.logger.Error("ui loop failed", slog.Any("error", err))
	}
}

// Shutdown gracefully shuts down the application.
// This should be called via deferring in main.go.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	if a.presenter != nil {
		a.presenter.Shutdown()
	}

	if a.themeService != nil {
		if err := a.themeService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown theme service", slog.Any("error", err))
		}
	}

	if a.playerService != nil {
		if err := a.playerService.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown player service", slog.Any("error", err))
		}
	}

	if a.audioEngine != nil {
		if err := a.audioEngine.Shutdown(); err != nil {
			a.logger.Warn("failed to shutdown audio engine", slog.Any("error", err))
		}
	}

	if err := a.eventBus.Close(); err != nil {
		a.logger.Warn("failed to close event bus", slog.Any("error", err))
	}

	a.logger.Info("application shutdown complete")
}
