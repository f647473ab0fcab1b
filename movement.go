package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// enableAutoPan schedules scripted camera movement for a limited duration.
func (g *Game) enableAutoPan(duration time.Duration) {
	g.autoPan = true
	g.autoPanDeadline = time.Now().Add(duration)
	if g.autoPanRand == nil {
		g.autoPanRand = rand.New(rand.NewSource(time.Now().UnixNano() + 3))
	}
	g.autoPanFrameCount = 0
}

// handleCameraInput applies keyboard, wheel and drag input to the camera, or
// the scripted pan while auto-pan is active.
func (g *Game) handleCameraInput() {
	if g.autoPan {
		dx, dy := g.autoPanVector()
		g.cam.Pan(dx, dy)
		return
	}

	dx, dy := g.keyboardPanVector()
	if dx != 0 || dy != 0 {
		g.cam.Pan(dx, dy)
	}

	cx, cy := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.dragging = true
		g.dragX, g.dragY = cx, cy
	}
	if g.dragging {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			g.dragging = false
		} else {
			g.cam.Pan(float64(g.dragX-cx), float64(g.dragY-cy))
			g.dragX, g.dragY = cx, cy
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.cam.ZoomAt(math.Pow(g.tune.Camera.ZoomStep, wy), float64(cx), float64(cy), g.screenW, g.screenH)
	}
	midX, midY := float64(g.screenW)/2, float64(g.screenH)/2
	if ebiten.IsKeyPressed(ebiten.KeyEqual) || ebiten.IsKeyPressed(ebiten.KeyKPAdd) {
		g.cam.ZoomAt(zoomKeyFactor, midX, midY, g.screenW, g.screenH)
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) || ebiten.IsKeyPressed(ebiten.KeyKPSubtract) {
		g.cam.ZoomAt(1/zoomKeyFactor, midX, midY, g.screenW, g.screenH)
	}
}

// keyboardPanVector returns WASD/arrow movement in screen pixels.
func (g *Game) keyboardPanVector() (float64, float64) {
	speed := g.tune.Camera.PanSpeed
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += speed
	}
	if dx != 0 && dy != 0 {
		dx *= 0.7071
		dy *= 0.7071
	}
	return dx, dy
}

// autoPanVector returns a pseudo-random heading that turns around at the map
// edges.
func (g *Game) autoPanVector() (float64, float64) {
	if g.autoPanFrameCount <= 0 {
		g.randomizeAutoPanDirection()
	}
	nextX := g.cam.X + g.autoPanDirX*autoPanSpeed/g.cam.Zoom
	nextY := g.cam.Y + g.autoPanDirY*autoPanSpeed/g.cam.Zoom
	if nextX < 0 || nextX > g.world.Width {
		g.autoPanDirX = -g.autoPanDirX
	}
	if nextY < 0 || nextY > g.world.Height {
		g.autoPanDirY = -g.autoPanDirY
	}
	g.autoPanFrameCount--
	return g.autoPanDirX * autoPanSpeed, g.autoPanDirY * autoPanSpeed
}

// randomizeAutoPanDirection chooses a new heading and occasionally nudges
// the zoom so every LOD tier is exercised.
func (g *Game) randomizeAutoPanDirection() {
	angle := g.autoPanRand.Float64() * 2 * math.Pi
	g.autoPanDirX = math.Cos(angle)
	g.autoPanDirY = math.Sin(angle)
	g.autoPanFrameCount = autoPanMinFrames + g.autoPanRand.Intn(autoPanFrameJitter)
	factor := 0.6 + g.autoPanRand.Float64()*0.8
	g.cam.ZoomAt(factor, float64(g.screenW)/2, float64(g.screenH)/2, g.screenW, g.screenH)
}
