package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"starview/starmap"
	"starview/tuning"
)

func main() {
	flag.Parse()

	tune := tuning.Default()
	if *tuningPathFlag != "" {
		loaded, err := tuning.Load(*tuningPathFlag)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		tune = loaded
	}
	margin := tune.Visibility.Margin
	if *marginFlag >= 0 {
		margin = *marginFlag
	}

	world, seed, err := loadWorld(*mapPathFlag, *seedFlag, *starCountFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("map %q: %d territories, %.0fx%.0f", world.Name, len(world.Territories), world.Width, world.Height)

	if *exportMapFlag != "" {
		if err := starmap.Save(*exportMapFlag, world); err != nil {
			log.Fatalf("export map: %v", err)
		}
		log.Printf("wrote %s", *exportMapFlag)
		return
	}

	g := newGame(world, seed, tune, margin)
	defer g.Close()

	if *recordDefaultPGO {
		stop, err := startCPUProfile(pgoOutputPath, g.culler.Stats)
		if err != nil {
			log.Fatalf("record pgo: %v", err)
		}
		g.stopProfile = stop
		g.enableAutoPan(pgoRecordDuration)
		log.Printf("recording %s for %v", pgoOutputPath, pgoRecordDuration)
	}

	ebiten.SetTPS(defaultTPS)
	ebiten.SetWindowSize(defaultScreenW, defaultScreenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("starview")
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatalf("run: %v", err)
	}
}
