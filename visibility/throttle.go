package visibility

import (
	"math"
	"time"
)

const (
	defaultBaseInterval    = 100 * time.Millisecond
	defaultLowFPSThreshold = 30.0
	defaultSlowdownFactor  = 1.5
)

// Throttle bounds how often the culler recomputes. Under load the interval is
// widened so fewer frames pay for a full scan.
type Throttle struct {
	BaseInterval    time.Duration
	LowFPSThreshold float64
	SlowdownFactor  float64
}

// DefaultThrottle returns 100ms between passes, widened 1.5x below 30 fps.
func DefaultThrottle() Throttle {
	return Throttle{
		BaseInterval:    defaultBaseInterval,
		LowFPSThreshold: defaultLowFPSThreshold,
		SlowdownFactor:  defaultSlowdownFactor,
	}
}

// Effective returns the minimum time between passes at the given frame rate.
// A widened interval saturates at the largest Duration instead of wrapping.
func (t Throttle) Effective(fps float64) time.Duration {
	if !(fps < t.LowFPSThreshold) {
		return t.BaseInterval
	}
	widened := float64(t.BaseInterval) * t.SlowdownFactor
	switch {
	case math.IsNaN(widened):
		return t.BaseInterval
	case widened >= math.MaxInt64:
		return time.Duration(math.MaxInt64)
	case widened < 0:
		return 0
	}
	return time.Duration(widened)
}
