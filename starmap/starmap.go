// Package starmap loads, saves and generates territory maps.
package starmap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"starview/visibility"
)

var (
	ErrDuplicateID      = errors.New("duplicate territory id")
	ErrInvalidTerritory = errors.New("invalid territory")
)

// Map is a rectangular world populated with territories.
type Map struct {
	Name        string                 `yaml:"name"`
	Width       float64                `yaml:"width"`
	Height      float64                `yaml:"height"`
	Territories []visibility.Territory `yaml:"territories"`
}

// Validate checks ids are unique and non-empty and that geometry is finite.
func (m *Map) Validate() error {
	if m.Width <= 0 || m.Height <= 0 || !finite(m.Width) || !finite(m.Height) {
		return fmt.Errorf("map size %vx%v is invalid", m.Width, m.Height)
	}
	seen := make(map[visibility.ID]struct{}, len(m.Territories))
	for i, t := range m.Territories {
		if t.ID == "" {
			return fmt.Errorf("%w: entry %d has no id", ErrInvalidTerritory, i)
		}
		if !finite(t.X) || !finite(t.Y) || !finite(t.Radius) || t.Radius < 0 {
			return fmt.Errorf("%w: %s has position (%v, %v) radius %v", ErrInvalidTerritory, t.ID, t.X, t.Y, t.Radius)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func compressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zst")
}

// Load reads a YAML map, decompressing it first when the path ends in .zst.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReaderSize(f, 64*1024)
	if compressed(path) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening zstd stream %q: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}

	var m Map
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Save writes m as YAML, zstd-compressed when the path ends in .zst.
func Save(path string, m *Map) error {
	if err := m.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding map: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding map: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating map dir %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating map %q: %w", path, err)
	}
	defer f.Close()

	if !compressed(path) {
		if _, err := f.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("writing map %q: %w", path, err)
		}
		return nil
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("compressing %q: %w", path, err)
	}
	if _, err := zw.Write(buf.Bytes()); err != nil {
		zw.Close()
		return fmt.Errorf("compressing %q: %w", path, err)
	}
	return zw.Close()
}
