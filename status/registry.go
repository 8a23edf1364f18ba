// Package status publishes live engine metrics for the viewer status line and debug logging
package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Well-known metric keys written by the engine
const (
	KeyFrames          = "frame.count"
	KeyFrameMs         = "frame.ms"
	KeyEnergy          = "audio.energy"
	KeyRawEnergy       = "audio.raw"
	KeyPlayState       = "audio.state"
	KeySource          = "audio.source"
	KeyStyle           = "bg.style"
	KeySeed            = "bg.seed"
	KeyPoints          = "field.points"
	KeyGenerations     = "field.generations"
	KeyBlobPhase       = "blob.phase"
	KeyTransitions     = "blob.transitions"
	KeyPersistWrites   = "state.writes"
	KeyPersistErrors   = "state.errors"
	KeyDroppedCommands = "cmd.dropped"
)

// Registry is the metrics facade
// Writers cache cell pointers once; readers take snapshots from any goroutine
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of cells across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot formats every cell as text keyed by metric name
func (r *Registry) Snapshot() map[string]string {
	out := make(map[string]string, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) {
		out[k] = strconv.FormatBool(v.Load())
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		out[k] = strconv.FormatInt(v.Load(), 10)
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		out[k] = fmt.Sprintf("%.3f", v.Get())
	})
	r.Strings.Range(func(k string, v *AtomicString) {
		out[k] = v.Load()
	})
	return out
}
