package starmap

import (
	"fmt"
	"math/rand"

	"starview/visibility"
)

const (
	minTerritoryRadius = 6
	maxTerritoryRadius = 22
	territorySpacing   = 8
	placementAttempts  = 30
	edgePadding        = maxTerritoryRadius + territorySpacing
)

// Generate builds a deterministic random map. Territories are placed by
// rejection sampling so that none overlap; when the world is too crowded
// fewer than count may be returned.
func Generate(seed int64, count int, width, height float64) *Map {
	rng := rand.New(rand.NewSource(seed))
	m := &Map{
		Name:        fmt.Sprintf("generated-%d", seed),
		Width:       width,
		Height:      height,
		Territories: make([]visibility.Territory, 0, count),
	}
	spanX := width - 2*edgePadding
	spanY := height - 2*edgePadding
	if spanX <= 0 || spanY <= 0 {
		return m
	}
	for i := 0; i < count; i++ {
		for attempt := 0; attempt < placementAttempts; attempt++ {
			radius := minTerritoryRadius + rng.Float64()*(maxTerritoryRadius-minTerritoryRadius)
			x := edgePadding + rng.Float64()*spanX
			y := edgePadding + rng.Float64()*spanY
			if overlapsAny(m.Territories, x, y, radius) {
				continue
			}
			m.Territories = append(m.Territories, visibility.Territory{
				ID:     visibility.ID(fmt.Sprintf("T-%04d", len(m.Territories)+1)),
				X:      x,
				Y:      y,
				Radius: radius,
			})
			break
		}
	}
	return m
}

func overlapsAny(existing []visibility.Territory, x, y, radius float64) bool {
	for _, t := range existing {
		dx := t.X - x
		dy := t.Y - y
		minDist := t.Radius + radius + territorySpacing
		if dx*dx+dy*dy < minDist*minDist {
			return true
		}
	}
	return false
}
