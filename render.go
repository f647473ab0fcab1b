package main

import (
	"fmt"
	"hash/fnv"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"starview/camera"
	"starview/visibility"
)

var (
	backgroundColor = color.RGBA{8, 10, 24, 255}
	outlineColor    = color.RGBA{220, 220, 240, 160}
)

// Draw renders the territories the culler kept, then the optional overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	lod := g.cam.LOD()
	for _, t := range g.world.Territories {
		if !g.culler.IsVisible(t.ID) {
			continue
		}
		g.drawTerritory(screen, t, lod)
	}

	if *debugFlag {
		st := g.culler.Stats()
		debugMsg := fmt.Sprintf("FPS: %.1f TPS: %.1f\nVisible: %d/%d (zoom %.2f)\nCull passes: %d skipped: %d\nInterval: %v scan: %v batched: %v",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.culler.VisibleCount(), len(g.world.Territories), g.cam.Zoom,
			st.Passes, st.Skipped, st.EffectiveInterval, st.LastScan, st.Batched)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// drawTerritory draws one territory at the detail level for the current zoom.
func (g *Game) drawTerritory(screen *ebiten.Image, t visibility.Territory, lod camera.Detail) {
	sx, sy := g.cam.WorldToScreen(t.X, t.Y, g.screenW, g.screenH)
	clr := territoryColor(t.ID)
	if lod == camera.DetailStars {
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), minStarDotRadius, clr, false)
		return
	}
	r := float32(t.Radius * g.cam.Zoom)
	if r < minStarDotRadius {
		r = minStarDotRadius
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), r, clr, true)
	vector.StrokeCircle(screen, float32(sx), float32(sy), r, 1, outlineColor, true)
	if lod == camera.DetailLabels {
		ebitenutil.DebugPrintAt(screen, string(t.ID), int(sx+float64(r))+labelOffsetPx, int(sy)-labelOffsetPx*2)
	}
}

// territoryColor derives a stable, reasonably bright colour from an id.
func territoryColor(id visibility.ID) color.RGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	sum := h.Sum32()
	channel := func(v uint32) uint8 {
		return uint8(80 + (v&0xFF)*175/255)
	}
	return color.RGBA{channel(sum), channel(sum >> 8), channel(sum >> 16), 255}
}

// Layout tracks the window size so culling follows resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.screenW, g.screenH = outsideWidth, outsideHeight
	}
	return g.screenW, g.screenH
}
