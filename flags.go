package main

import "flag"

// Command-line flags that select the map, tuning and optional diagnostics.
var (
	// mapPathFlag points at a YAML map; a .zst suffix enables zstd decoding.
	mapPathFlag = flag.String("map", "", "territory map to load (.yaml or .yaml.zst); empty generates one")

	// tuningPathFlag points at the culling and camera tuning file.
	tuningPathFlag = flag.String("tuning", "", "tuning YAML file; empty uses built-in defaults")

	starCountFlag = flag.Int("stars", defaultStarCount, "territory count for generated maps")

	// seedFlag fixes map generation; zero derives a seed from the clock.
	seedFlag = flag.Int64("seed", 0, "map generation seed (0 = time based)")

	// marginFlag overrides the tuning file's cull margin when non-negative.
	marginFlag = flag.Float64("margin", -1, "cull margin in world units (negative uses tuning)")

	// debugFlag enables the FPS and culling overlay plus periodic stats logging.
	debugFlag = flag.Bool("debug", false, "show FPS and culling overlay")

	openCLCullFlag = flag.Bool("opencl-cull", false, "test territory bounds on an OpenCL device for large maps (requires -tags opencl)")

	// recordDefaultPGO pans the camera automatically while capturing default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "auto-pan for 15s while capturing default.pgo")

	exportMapFlag = flag.String("export-map", "", "write the active map to this path (.yaml or .yaml.zst) and exit")
)
