package utils

import (
	"log/slog"
	"runtime"
)

// MemUsage groups the heap figures of runtime.MemStats in MiB for a log record
func MemUsage() slog.Attr {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return slog.Group("mem",
		slog.Uint64("alloc_mib", bToMb(m.Alloc)),
		slog.Uint64("total_alloc_mib", bToMb(m.TotalAlloc)),
		slog.Uint64("sys_mib", bToMb(m.Sys)),
		slog.Uint64("num_gc", uint64(m.NumGC)),
	)
}
