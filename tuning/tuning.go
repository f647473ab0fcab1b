// Package tuning loads the YAML file that tunes culling and camera behaviour.
package tuning

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"starview/visibility"
)

// Tuning is the on-disk tuning file: culling throttle and camera limits.
type Tuning struct {
	Visibility Visibility `yaml:"visibility"`
	Camera     Camera     `yaml:"camera"`
}

// Visibility configures the culler. Margin is in world units.
type Visibility struct {
	BaseIntervalMs    int     `yaml:"base_interval_ms"`
	LowFPSThreshold   float64 `yaml:"low_fps_threshold"`
	SlowdownFactor    float64 `yaml:"slowdown_factor"`
	Margin            float64 `yaml:"margin"`
	GPUMinTerritories int     `yaml:"gpu_min_territories"`
}

// Camera bounds zoom and sets the keyboard pan speed in pixels per tick.
type Camera struct {
	PanSpeed float64 `yaml:"pan_speed"`
	MinZoom  float64 `yaml:"min_zoom"`
	MaxZoom  float64 `yaml:"max_zoom"`
	ZoomStep float64 `yaml:"zoom_step"`
}

// Default returns the built-in tuning used when no file is given.
func Default() Tuning {
	return Tuning{
		Visibility: Visibility{
			BaseIntervalMs:    100,
			LowFPSThreshold:   30,
			SlowdownFactor:    1.5,
			Margin:            50,
			GPUMinTerritories: 2048,
		},
		Camera: Camera{
			PanSpeed: 8,
			MinZoom:  0.1,
			MaxZoom:  4,
			ZoomStep: 1.1,
		},
	}
}

// Load reads a tuning file. Fields absent from the file keep their defaults.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Validate rejects values that would break the culler or camera, naming the
// offending field.
func (t Tuning) Validate() error {
	v := t.Visibility
	if v.BaseIntervalMs < 0 {
		return fmt.Errorf("visibility.base_interval_ms must be >= 0, got %d", v.BaseIntervalMs)
	}
	if v.SlowdownFactor < 1 || !finite(v.SlowdownFactor) {
		return fmt.Errorf("visibility.slowdown_factor must be finite and >= 1, got %v", v.SlowdownFactor)
	}
	if widened := float64(v.BaseIntervalMs) * float64(time.Millisecond) * v.SlowdownFactor; widened >= math.MaxInt64 {
		return fmt.Errorf("visibility.base_interval_ms %d * slowdown_factor %v overflows a duration", v.BaseIntervalMs, v.SlowdownFactor)
	}
	if v.LowFPSThreshold < 0 || !finite(v.LowFPSThreshold) {
		return fmt.Errorf("visibility.low_fps_threshold must be finite and >= 0, got %v", v.LowFPSThreshold)
	}
	if v.Margin < 0 || !finite(v.Margin) {
		return fmt.Errorf("visibility.margin must be >= 0, got %v", v.Margin)
	}
	c := t.Camera
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom || !finite(c.MaxZoom) {
		return fmt.Errorf("camera zoom range [%v, %v] is invalid", c.MinZoom, c.MaxZoom)
	}
	if c.ZoomStep <= 1 {
		return fmt.Errorf("camera.zoom_step must be > 1, got %v", c.ZoomStep)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Throttle converts the visibility section into a culler throttle.
func (t Tuning) Throttle() visibility.Throttle {
	return visibility.Throttle{
		BaseInterval:    time.Duration(t.Visibility.BaseIntervalMs) * time.Millisecond,
		LowFPSThreshold: t.Visibility.LowFPSThreshold,
		SlowdownFactor:  t.Visibility.SlowdownFactor,
	}
}
