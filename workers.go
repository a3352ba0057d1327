package envoi

import "runtime"

// Worker count bounds for batch rendering.
const (
	// MinWorkers ensures at least one invoice renders at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing; each worker buffers a whole document.
	MaxWorkers = 16
)

// ResolveWorkers determines how many invoices to render in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// A Renderer is safe for concurrent use, so workers share one.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
