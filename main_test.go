package main

import (
	"path/filepath"
	"testing"

	"starview/starmap"
)

func TestLoadWorldGeneratesWithSeed(t *testing.T) {
	m, seed, err := loadWorld("", 99, 50)
	if err != nil {
		t.Fatalf("loadWorld: %v", err)
	}
	if seed != 99 {
		t.Fatalf("seed = %d, want 99", seed)
	}
	if len(m.Territories) != 50 {
		t.Fatalf("got %d territories, want 50", len(m.Territories))
	}
	if m.Width != defaultWorldW || m.Height != defaultWorldH {
		t.Fatalf("unexpected world size %vx%v", m.Width, m.Height)
	}
}

func TestLoadWorldPicksClockSeed(t *testing.T) {
	_, seed, err := loadWorld("", 0, 1)
	if err != nil {
		t.Fatalf("loadWorld: %v", err)
	}
	if seed == 0 {
		t.Fatalf("expected a non-zero clock seed")
	}
}

func TestLoadWorldFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.yaml.zst")
	if err := starmap.Save(path, starmap.Generate(3, 20, 2000, 2000)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	m, _, err := loadWorld(path, 0, 0)
	if err != nil {
		t.Fatalf("loadWorld: %v", err)
	}
	if len(m.Territories) != 20 {
		t.Fatalf("got %d territories, want 20", len(m.Territories))
	}
}

func TestLoadWorldRejectsNegativeCount(t *testing.T) {
	if _, _, err := loadWorld("", 1, -1); err == nil {
		t.Fatalf("expected error for negative star count")
	}
}

func TestTerritoryColorIsStable(t *testing.T) {
	a := territoryColor("T-0001")
	if a != territoryColor("T-0001") {
		t.Fatalf("colour changed between calls")
	}
	if a.R < 80 || a.G < 80 || a.B < 80 || a.A != 255 {
		t.Fatalf("colour %+v too dark or translucent", a)
	}
}
