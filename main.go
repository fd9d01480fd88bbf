// Package main is the production entry point for the AuraVis music visualizer.
//
// AuraVis renders audio-reactive 3D geometry while playing music:
// - Event-driven communication (no callbacks)
// - Dependency injection for testability
// - MVP pattern for UI decoupling
// - Frame-synchronous spectrum sampling for the visual modes
//
// Build:
//
//	go build -o build/auravis .
//
// Run:
//
//	./build/auravis [-preset vivid] [-preset-file tuning.yaml] [-mock] [-debug]
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/tejashwikalptaru/auravis/internal/app"
)

func main() {
	// Create configuration from defaults and command line
	config := app.DefaultConfig()

	preset := flag.String("preset", config.PresetName, "built-in visual preset (classic, vivid)")
	presetFile := flag.String("preset-file", "", "YAML preset file, overrides -preset")
	mock := flag.Bool("mock", false, "use the synthetic audio engine instead of real playback")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	config.PresetName = *preset
	config.PresetFile = *presetFile
	config.UseMockAudio = *mock
	if *debug {
		config.LogLevel = slog.LevelDebug
	}

	// Create the application with dependency injection
	application, err := app.NewApplication(config)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Ensure a graceful shutdown
	defer func() {
		fmt.Println("\nShutting down...")
		application.Shutdown()
		fmt.Println("Shutdown complete")
	}()

	// Run application (blocks until the window closed)
	application.Run()

	fmt.Println("Application exited cleanly")
}
