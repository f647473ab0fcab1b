package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sync"

	"starview/visibility"
)

// startCPUProfile writes a CPU profile to path while the culler runs. stats is
// sampled at start and stop so the log line reports how many culling passes
// the profile covers. The returned stop function is safe to call more than once.
func startCPUProfile(path string, stats func() visibility.Stats) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating profile %q: %w", path, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("starting CPU profile %q: %w", path, err)
	}
	before := stats()
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("profile %s: close: %v", path, err)
			}
			after := stats()
			log.Printf("profile %s: %d culling passes, %d skipped", path,
				after.Passes-before.Passes, after.Skipped-before.Skipped)
		})
	}
	return stop, nil
}
