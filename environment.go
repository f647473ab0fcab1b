package main

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"starview/starmap"
)

// loadWorld returns the map named by path, or a generated one when path is
// empty. The seed actually used is returned alongside.
func loadWorld(path string, seed int64, stars int) (*starmap.Map, int64, error) {
	if path != "" {
		m, err := starmap.Load(path)
		if err != nil {
			return nil, 0, fmt.Errorf("loading map: %w", err)
		}
		return m, seed, nil
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if stars < 0 {
		return nil, 0, fmt.Errorf("star count must be >= 0, got %d", stars)
	}
	return starmap.Generate(seed, stars, defaultWorldW, defaultWorldH), seed, nil
}

// handleMapControls regenerates the map on R. File-backed maps are replaced
// by a generated one of the same size.
func (g *Game) handleMapControls() {
	if !inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return
	}
	count := len(g.world.Territories)
	if count == 0 {
		count = *starCountFlag
	}
	seed := g.seed + 1
	g.replaceWorld(starmap.Generate(seed, count, g.world.Width, g.world.Height), seed)
}
