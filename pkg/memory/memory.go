package memory

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"time"
)

const DefaultLogInterval = 5 * time.Minute

type Usage struct {
	HeapUsed  int
	HeapTotal int
	Sys       int
}

func toMegabytes(numBytes uint64) int {
	return int(math.Round(float64(numBytes) / 1024 / 1024))
}

// Read returns the current heap and runtime memory figures in megabytes.
func Read() *Usage {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &Usage{
		HeapUsed:  toMegabytes(memStats.HeapAlloc),
		HeapTotal: toMegabytes(memStats.HeapSys),
		Sys:       toMegabytes(memStats.Sys),
	}
}

// RunLogger logs the memory usage every interval until ctx is done.
func RunLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = DefaultLogInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			usage := Read()
			logger.InfoContext(
				ctx,
				"Memory usage.",
				slog.Group(
					"memory",
					slog.Int("heap_used_mb", usage.HeapUsed),
					slog.Int("heap_total_mb", usage.HeapTotal),
					slog.Int("sys_mb", usage.Sys),
				),
			)
		}
	}
}
