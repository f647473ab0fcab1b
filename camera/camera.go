// Package camera maps between world and screen space for a pannable,
// zoomable top-down view.
package camera

import (
	"math"

	"starview/visibility"
)

// Detail is the zoom-dependent rendering tier.
type Detail int

const (
	// DetailStars draws territories as fixed-size dots.
	DetailStars Detail = iota
	// DetailRadius draws territories at their true radius.
	DetailRadius
	// DetailLabels additionally draws territory names.
	DetailLabels
)

// Zoom thresholds separating the detail tiers.
const (
	radiusZoom = 0.5
	labelZoom  = 1.5
)

// Camera is centred on world point (X, Y). Zoom is screen pixels per world
// unit.
type Camera struct {
	X, Y    float64
	Zoom    float64
	MinZoom float64
	MaxZoom float64
}

// New returns a camera centred on (x, y) at zoom 1.
func New(x, y, minZoom, maxZoom float64) *Camera {
	c := &Camera{X: x, Y: y, Zoom: 1, MinZoom: minZoom, MaxZoom: maxZoom}
	c.Zoom = c.clampZoom(c.Zoom)
	return c
}

// Bounds returns the world rectangle visible on a screen of the given size.
func (c *Camera) Bounds(screenW, screenH int) visibility.Bounds {
	halfW := float64(screenW) / 2 / c.Zoom
	halfH := float64(screenH) / 2 / c.Zoom
	return visibility.Bounds{
		Left:   c.X - halfW,
		Right:  c.X + halfW,
		Top:    c.Y - halfH,
		Bottom: c.Y + halfH,
	}
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64, screenW, screenH int) (float64, float64) {
	sx := (wx-c.X)*c.Zoom + float64(screenW)/2
	sy := (wy-c.Y)*c.Zoom + float64(screenH)/2
	return sx, sy
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float64, screenW, screenH int) (float64, float64) {
	wx := (sx-float64(screenW)/2)/c.Zoom + c.X
	wy := (sy-float64(screenH)/2)/c.Zoom + c.Y
	return wx, wy
}

// Pan moves the camera by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// ZoomAt scales the zoom by factor while keeping the world point under screen
// position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float64, screenW, screenH int) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	wx, wy := c.ScreenToWorld(sx, sy, screenW, screenH)
	c.Zoom = c.clampZoom(c.Zoom * factor)
	nx, ny := c.ScreenToWorld(sx, sy, screenW, screenH)
	c.X += wx - nx
	c.Y += wy - ny
}

// ClampTo keeps the camera centre inside the world rectangle.
func (c *Camera) ClampTo(width, height float64) {
	c.X = math.Max(0, math.Min(width, c.X))
	c.Y = math.Max(0, math.Min(height, c.Y))
}

// LOD returns the rendering tier for the current zoom.
func (c *Camera) LOD() Detail {
	switch {
	case c.Zoom >= labelZoom:
		return DetailLabels
	case c.Zoom >= radiusZoom:
		return DetailRadius
	default:
		return DetailStars
	}
}

func (c *Camera) clampZoom(z float64) float64 {
	if c.MinZoom > 0 && z < c.MinZoom {
		return c.MinZoom
	}
	if c.MaxZoom > 0 && z > c.MaxZoom {
		return c.MaxZoom
	}
	return z
}
