// Package visual implements the audio-reactive visualization core: five mode
// strategies that rewrite scene geometry from spectrum data once per frame,
// and the session that owns the tick loop, camera and active mode.
package visual

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tejashwikalptaru/auravis/internal/domain"
)

// Preset is a named set of visual tuning constants. The two presets capture
// the two observed calibrations of the visualizer; everything a preset does
// not cover is a fixed per-mode constant.
type Preset struct {
	Name string `yaml:"name"`

	// Rings
	RingLayers       int `yaml:"ring_layers"`        // concentric loops per group
	RingPoints       int `yaml:"ring_points"`        // angular samples per loop
	RingHighlightMax int `yaml:"ring_highlight_max"` // highlight slots per group

	// Mirrored spikes
	SpikeCount int `yaml:"spike_count"`

	// Oscilloscope ribbons
	RibbonGroups       int     `yaml:"ribbon_groups"`
	RibbonLayers       int     `yaml:"ribbon_layers"` // strips per group
	RibbonPoints       int     `yaml:"ribbon_points"` // points per strip
	RibbonHighlightMax int     `yaml:"ribbon_highlight_max"`
	RibbonSpread       float64 `yaml:"ribbon_spread"` // vertical gap between layers

	// EQ bars
	BarCount    int     `yaml:"bar_count"`
	BarFloor    float64 `yaml:"bar_floor"`    // minimum bar height in scene units
	PeakGravity float64 `yaml:"peak_gravity"` // per-frame peak deceleration

	// Volumetric wave
	WaveLayers int `yaml:"wave_layers"`
	WavePoints int `yaml:"wave_points"` // positions per side (top and bottom each)

	// Shared smoothing rates
	ColorSmoothing  float64 `yaml:"color_smoothing"`  // exponential rate toward the active color
	CameraSmoothing float64 `yaml:"camera_smoothing"` // exponential rate toward the dolly target
	CameraBaseline  float64 `yaml:"camera_baseline"`  // resting dolly distance
	CameraBassPull  float64 `yaml:"camera_bass_pull"` // dolly-in per unit of bass energy
}

// Classic is the default calibration.
func Classic() Preset {
	return Preset{
		Name:               "classic",
		RingLayers:         16,
		RingPoints:         256,
		RingHighlightMax:   64,
		SpikeCount:         128,
		RibbonGroups:       4,
		RibbonLayers:       5,
		RibbonPoints:       300,
		RibbonHighlightMax: 48,
		RibbonSpread:       9,
		BarCount:           48,
		BarFloor:           2,
		PeakGravity:        0.8,
		WaveLayers:         15,
		WavePoints:         300,
		ColorSmoothing:     0.06,
		CameraSmoothing:    0.05,
		CameraBaseline:     640,
		CameraBassPull:     140,
	}
}

// Vivid is the denser, faster calibration.
func Vivid() Preset {
	return Preset{
		Name:               "vivid",
		RingLayers:         16,
		RingPoints:         256,
		RingHighlightMax:   48,
		SpikeCount:         160,
		RibbonGroups:       6,
		RibbonLayers:       8,
		RibbonPoints:       400,
		RibbonHighlightMax: 64,
		RibbonSpread:       7,
		BarCount:           64,
		BarFloor:           2,
		PeakGravity:        1.0,
		WaveLayers:         20,
		WavePoints:         300,
		ColorSmoothing:     0.08,
		CameraSmoothing:    0.07,
		CameraBaseline:     600,
		CameraBassPull:     170,
	}
}

// PresetNames returns the built-in preset names in display order.
func PresetNames() []string {
	return []string{"classic", "vivid"}
}

// PresetByName returns a built-in preset.
func PresetByName(name string) (Preset, error) {
	switch name {
	case "classic", "":
		return Classic(), nil
	case "vivid":
		return Vivid(), nil
	default:
		return Preset{}, fmt.Errorf("%w: %q", domain.ErrUnknownPreset, name)
	}
}

// LoadPresetFile reads a YAML preset file. Fields omitted in the file keep
// their Classic defaults, so a file only needs to name the constants it tunes.
func LoadPresetFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading preset file: %w", err)
	}
	return ParsePreset(data)
}

// ParsePreset parses YAML preset data over Classic defaults.
func ParsePreset(data []byte) (Preset, error) {
	p := Classic()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("parsing preset: %w", err)
	}
	if err := p.validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// validate rejects presets that would build degenerate geometry.
func (p Preset) validate() error {
	switch {
	case p.RingLayers < 1 || p.RingPoints < 3:
		return fmt.Errorf("preset %q: ring topology too small", p.Name)
	case p.SpikeCount < 2:
		return fmt.Errorf("preset %q: spike count too small", p.Name)
	case p.RibbonGroups < 1 || p.RibbonLayers < 1 || p.RibbonPoints < 2:
		return fmt.Errorf("preset %q: ribbon topology too small", p.Name)
	case p.BarCount < 1:
		return fmt.Errorf("preset %q: bar count too small", p.Name)
	case p.WaveLayers < 1 || p.WavePoints < 2:
		return fmt.Errorf("preset %q: wave topology too small", p.Name)
	case p.ColorSmoothing <= 0 || p.ColorSmoothing > 1:
		return fmt.Errorf("preset %q: color smoothing out of range", p.Name)
	}
	return nil
}
