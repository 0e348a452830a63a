package md2epub

import "runtime"

// Worker count bounds.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent chapter renders; beyond this the stage is
	// bound by disk I/O.
	MaxWorkers = 16
)

// ResolveWorkers determines how many goroutines a build stage may use.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in the CLI).
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}
