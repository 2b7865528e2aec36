package health

import (
	"context"
	"runtime"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a liveness check that fails once the number
// of goroutines exceeds threshold. A runaway count usually means leaked
// workers or stuck requests.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// GCMaxPauseCheck returns a liveness check that fails when the most recent
// garbage collection pause exceeded threshold.
func GCMaxPauseCheck(threshold time.Duration) CheckFunc {
	return func(_ context.Context) error {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)

		recent := stats.PauseNs[(stats.NumGC+255)%256]
		if pause := time.Duration(recent); pause > threshold {
			return errors.Errorf("last GC pause %s exceeds threshold %s", pause, threshold)
		}
		return nil
	}
}
