package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	TotalAlloc   uint64 // cumulative bytes allocated
	Sys          uint64 // total bytes obtained from OS
	Mallocs      uint64 // cumulative heap objects allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryUsage is the difference between two snapshots taken around an
// enumeration.
type MemoryUsage struct {
	Allocated    uint64 // bytes allocated between the snapshots
	Allocations  uint64 // heap objects allocated between the snapshots
	GCCycles     uint32
	PauseTotalNs uint64
	PeakHeap     uint64 // HeapAlloc of the later snapshot
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		TotalAlloc:   m.TotalAlloc,
		Sys:          m.Sys,
		Mallocs:      m.Mallocs,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Since returns the usage accumulated between before and s.
func (s MemorySnapshot) Since(before MemorySnapshot) MemoryUsage {
	return MemoryUsage{
		Allocated:    s.TotalAlloc - before.TotalAlloc,
		Allocations:  s.Mallocs - before.Mallocs,
		GCCycles:     s.NumGC - before.NumGC,
		PauseTotalNs: s.PauseTotalNs - before.PauseTotalNs,
		PeakHeap:     s.HeapAlloc,
	}
}
