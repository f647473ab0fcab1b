package visibility

// ID identifies a territory on the map.
type ID string

// Territory is a circular map entity subject to visibility testing.
type Territory struct {
	ID     ID      `yaml:"id"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

// Bounds is an axis-aligned rectangle in world coordinates. Top is the
// smaller Y value.
type Bounds struct {
	Left, Right float64
	Top, Bottom float64
}

// Expand returns b padded by margin on every side.
func (b Bounds) Expand(margin float64) Bounds {
	return Bounds{
		Left:   b.Left - margin,
		Right:  b.Right + margin,
		Top:    b.Top - margin,
		Bottom: b.Bottom + margin,
	}
}

// Width reports the horizontal extent of b.
func (b Bounds) Width() float64 { return b.Right - b.Left }

// Height reports the vertical extent of b.
func (b Bounds) Height() float64 { return b.Bottom - b.Top }

// Intersects reports whether the bounding box of t touches view expanded by
// margin. All four comparisons are inclusive.
func Intersects(t Territory, view Bounds, margin float64) bool {
	return t.X+t.Radius >= view.Left-margin &&
		t.X-t.Radius <= view.Right+margin &&
		t.Y+t.Radius >= view.Top-margin &&
		t.Y-t.Radius <= view.Bottom+margin
}
