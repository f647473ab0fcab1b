package main

import "time"

// Window, world and timing constants for the map viewer. Culling and camera
// tuning live in the tuning file; these values only shape the default session.
const (
	defaultScreenW     = 1280
	defaultScreenH     = 800
	defaultTPS         = 60
	defaultStarCount   = 350
	defaultWorldW      = 6000.0
	defaultWorldH      = 4000.0
	minStarDotRadius   = 1.5
	labelOffsetPx      = 4
	zoomKeyFactor      = 1.02
	autoPanSpeed       = 6.0
	autoPanMinFrames   = 30
	autoPanFrameJitter = 90
	statsLogInterval   = 5 * time.Second
	pgoRecordDuration  = 15 * time.Second
	pgoOutputPath      = "default.pgo"
)
