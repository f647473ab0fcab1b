package tuning

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultThrottleMatchesCuller(t *testing.T) {
	th := Default().Throttle()
	if th.BaseInterval != 100*time.Millisecond || th.LowFPSThreshold != 30 || th.SlowdownFactor != 1.5 {
		t.Fatalf("unexpected default throttle %+v", th)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := writeFile(t, "visibility:\n  base_interval_ms: 250\n  margin: 12\ncamera:\n  max_zoom: 8\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Visibility.BaseIntervalMs != 250 || got.Visibility.Margin != 12 {
		t.Fatalf("overrides not applied: %+v", got.Visibility)
	}
	if got.Visibility.SlowdownFactor != 1.5 {
		t.Fatalf("slowdown factor should keep its default, got %v", got.Visibility.SlowdownFactor)
	}
	if got.Camera.MaxZoom != 8 || got.Camera.MinZoom != 0.1 {
		t.Fatalf("camera section not merged: %+v", got.Camera)
	}
	if got.Throttle().BaseInterval != 250*time.Millisecond {
		t.Fatalf("Throttle().BaseInterval = %v", got.Throttle().BaseInterval)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "visibility:\n  slowdown_factor: 0.5\n")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "slowdown_factor") {
		t.Fatalf("error should name the field: %v", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeFile(t, "visibility: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Load(path)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestLoadRejectsOverflowingSlowdown(t *testing.T) {
	for _, factor := range []string{".inf", "1e300"} {
		path := writeFile(t, "visibility:\n  slowdown_factor: "+factor+"\n")
		got, err := Load(path)
		if err == nil {
			t.Fatalf("slowdown_factor %s: expected error, Effective(10) = %v", factor, got.Throttle().Effective(10))
		}
		if !strings.Contains(err.Error(), "slowdown_factor") {
			t.Fatalf("slowdown_factor %s: error should name the field: %v", factor, err)
		}
	}
}

func TestLoadAcceptsLargeButRepresentableSlowdown(t *testing.T) {
	path := writeFile(t, "visibility:\n  base_interval_ms: 100\n  slowdown_factor: 1000\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if eff := got.Throttle().Effective(10); eff != 100*time.Second {
		t.Fatalf("Effective(10) = %v, want 100s", eff)
	}
}

func TestLoadRejectsBadLowFPSThreshold(t *testing.T) {
	for _, v := range []string{".nan", ".inf", "-5"} {
		path := writeFile(t, "visibility:\n  low_fps_threshold: "+v+"\n")
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "low_fps_threshold") {
			t.Fatalf("low_fps_threshold %s: expected field error, got %v", v, err)
		}
	}
}
