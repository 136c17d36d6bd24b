// Package metrics collects runtime and exploration measurements for the bench
// stages and writes them as reports.
package metrics

import (
	"runtime"
	"runtime/debug"
	"time"
)

// Snapshot is a point-in-time view of the runtime and the node store.
type Snapshot struct {
	TS        time.Time
	HeapAlloc uint64
	HeapSys   uint64
	NumGC     uint32
	Nodes     int
}

// Take records the current runtime figures alongside the store length.
func Take(nodes int) Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		TS:        time.Now(),
		HeapAlloc: m.HeapAlloc,
		HeapSys:   m.HeapSys,
		NumGC:     m.NumGC,
		Nodes:     nodes,
	}
}

// GC forces a collection and returns memory to the OS.
func GC() {
	runtime.GC()
	debug.FreeOSMemory()
}

// BytesPerNode estimates heap growth per node created between two snapshots.
func BytesPerNode(before, after Snapshot) float64 {
	nodes := after.Nodes - before.Nodes
	if nodes <= 0 {
		return 0
	}
	grown := int64(after.HeapAlloc) - int64(before.HeapAlloc)
	if grown < 0 {
		grown = 0
	}
	return float64(grown) / float64(nodes)
}
