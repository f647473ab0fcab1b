// Package visibility decides which map territories fall inside the camera view.
//
// A Culler is driven once per game tick. It rescans every territory at most
// once per throttle interval and keeps the result until the next pass, so the
// renderer may read a result up to one interval old.
package visibility

import (
	"log"
	"slices"
	"time"
)

// FullScanLimit is the territory count up to which a linear scan per pass is
// acceptable. Larger maps need a spatial index.
const FullScanLimit = 500

// BatchTester evaluates Intersects for a whole slice at once, writing one
// result per territory into hits.
type BatchTester interface {
	Test(territories []Territory, view Bounds, margin float64, hits []bool) error
}

// Stats is culling telemetry for the debug overlay.
type Stats struct {
	Passes            uint64
	Skipped           uint64
	Scanned           int
	Visible           int
	LastScan          time.Duration
	EffectiveInterval time.Duration
	Batched           bool
}

// Option configures a Culler.
type Option func(*Culler)

// WithBatchTester routes passes over at least minCount territories through bt.
func WithBatchTester(bt BatchTester, minCount int) Option {
	return func(c *Culler) {
		c.tester = bt
		c.testerMin = minCount
	}
}

// Culler owns the visible set and the throttle state. It is not safe for
// concurrent use; the game loop is its only caller.
type Culler struct {
	throttle Throttle
	visible  map[ID]struct{}
	last     time.Time
	hasPass  bool

	tester       BatchTester
	testerMin    int
	testerWarned bool
	hits         []bool

	scaleWarned bool
	stats       Stats
}

// NewCuller constructs a Culler with an empty visible set.
func NewCuller(throttle Throttle, opts ...Option) *Culler {
	c := &Culler{
		throttle: throttle,
		visible:  make(map[ID]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Throttle returns the throttle the culler was built with.
func (c *Culler) Throttle() Throttle { return c.throttle }

// Update rebuilds the visible set unless the previous pass is younger than
// the effective throttle interval. It reports whether a pass ran.
func (c *Culler) Update(now time.Time, view Bounds, margin float64, territories []Territory, fps float64) bool {
	interval := c.throttle.Effective(fps)
	c.stats.EffectiveInterval = interval
	if c.hasPass && now.Sub(c.last) < interval {
		c.stats.Skipped++
		return false
	}

	if len(territories) > FullScanLimit && !c.scaleWarned {
		log.Printf("visibility: %d territories exceeds full-scan limit %d; a spatial index is needed at this size",
			len(territories), FullScanLimit)
		c.scaleWarned = true
	}

	start := time.Now()
	clear(c.visible)
	c.stats.Batched = false
	if c.tester != nil && len(territories) >= c.testerMin && c.scanBatched(view, margin, territories) {
		c.stats.Batched = true
	} else {
		for _, t := range territories {
			if Intersects(t, view, margin) {
				c.visible[t.ID] = struct{}{}
			}
		}
	}

	c.last = now
	c.hasPass = true
	c.stats.Passes++
	c.stats.Scanned = len(territories)
	c.stats.Visible = len(c.visible)
	c.stats.LastScan = time.Since(start)
	return true
}

// scanBatched fills the visible set from the batch tester. On failure it
// returns false with the set still empty.
func (c *Culler) scanBatched(view Bounds, margin float64, territories []Territory) bool {
	if cap(c.hits) < len(territories) {
		c.hits = make([]bool, len(territories))
	}
	hits := c.hits[:len(territories)]
	if err := c.tester.Test(territories, view, margin, hits); err != nil {
		if !c.testerWarned {
			log.Printf("visibility: batch tester failed, using CPU scan: %v", err)
			c.testerWarned = true
		}
		return false
	}
	for i, hit := range hits {
		if hit {
			c.visible[territories[i].ID] = struct{}{}
		}
	}
	return true
}

// Invalidate forces the next Update to run a full pass.
func (c *Culler) Invalidate() {
	c.hasPass = false
}

// IsVisible reports whether id was inside the view at the last pass.
func (c *Culler) IsVisible(id ID) bool {
	_, ok := c.visible[id]
	return ok
}

// VisibleCount returns the size of the visible set.
func (c *Culler) VisibleCount() int {
	return len(c.visible)
}

// AppendVisible appends the visible IDs to dst in sorted order.
func (c *Culler) AppendVisible(dst []ID) []ID {
	start := len(dst)
	for id := range c.visible {
		dst = append(dst, id)
	}
	slices.Sort(dst[start:])
	return dst
}

// Stats returns a copy of the culling telemetry.
func (c *Culler) Stats() Stats {
	return c.stats
}
