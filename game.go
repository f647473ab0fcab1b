package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"starview/camera"
	"starview/starmap"
	"starview/tuning"
	"starview/visibility"
)

// Game owns the map, the camera and the culling state for one session.
type Game struct {
	world  *starmap.Map
	seed   int64
	tune   tuning.Tuning
	margin float64

	cam     *camera.Camera
	culler  *visibility.Culler
	gpuCull *visibility.OpenCLTester

	screenW int
	screenH int

	dragging     bool
	dragX, dragY int

	autoPan           bool
	autoPanDeadline   time.Time
	autoPanRand       *rand.Rand
	autoPanDirX       float64
	autoPanDirY       float64
	autoPanFrameCount int
	stopProfile       func()

	lastStatsLog time.Time
}

// newGame builds a session around world using the given tuning.
func newGame(world *starmap.Map, seed int64, tune tuning.Tuning, margin float64) *Game {
	g := &Game{
		world:       world,
		seed:        seed,
		tune:        tune,
		margin:      margin,
		cam:         camera.New(world.Width/2, world.Height/2, tune.Camera.MinZoom, tune.Camera.MaxZoom),
		screenW:     defaultScreenW,
		screenH:     defaultScreenH,
		autoPanRand: rand.New(rand.NewSource(time.Now().UnixNano() + 2)),
	}

	var opts []visibility.Option
	if *openCLCullFlag {
		if tester, err := visibility.NewOpenCLTester(); err != nil {
			log.Printf("OpenCL culling unavailable, using CPU scan: %v", err)
		} else {
			log.Printf("OpenCL culling enabled (device: %s)", tester.DeviceName())
			g.gpuCull = tester
			opts = append(opts, visibility.WithBatchTester(tester, tune.Visibility.GPUMinTerritories))
		}
	}
	g.culler = visibility.NewCuller(tune.Throttle(), opts...)
	return g
}

// Update handles input, then refreshes the visible territory set.
func (g *Game) Update() error {
	if g.autoPan && time.Now().After(g.autoPanDeadline) {
		g.autoPan = false
		if g.stopProfile != nil {
			g.stopProfile()
			g.stopProfile = nil
			log.Printf("wrote %s", pgoOutputPath)
			return ebiten.Termination
		}
	}

	g.handleCameraInput()
	g.handleMapControls()
	g.cam.ClampTo(g.world.Width, g.world.Height)

	g.culler.Update(time.Now(), g.cam.Bounds(g.screenW, g.screenH), g.margin, g.world.Territories, ebiten.ActualFPS())

	if *debugFlag {
		g.logCullStats()
	}
	return nil
}

// replaceWorld swaps in a new map and forces a fresh culling pass.
func (g *Game) replaceWorld(world *starmap.Map, seed int64) {
	g.world = world
	g.seed = seed
	g.cam.X, g.cam.Y = world.Width/2, world.Height/2
	g.culler.Invalidate()
	log.Printf("loaded map %q with %d territories", world.Name, len(world.Territories))
}

func (g *Game) logCullStats() {
	now := time.Now()
	if now.Sub(g.lastStatsLog) < statsLogInterval {
		return
	}
	st := g.culler.Stats()
	log.Printf("cull: visible %d/%d passes %d skipped %d interval %v scan %v batched %v",
		st.Visible, st.Scanned, st.Passes, st.Skipped, st.EffectiveInterval, st.LastScan, st.Batched)
	g.lastStatsLog = now
}

// Close releases device resources held by the session.
func (g *Game) Close() {
	if g.stopProfile != nil {
		g.stopProfile()
		g.stopProfile = nil
	}
	if g.gpuCull != nil {
		g.gpuCull.Close()
		g.gpuCull = nil
	}
}
