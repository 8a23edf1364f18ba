package status

import (
	"strings"
	"sync"
	"testing"
)

func TestAtomicFloatAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if got := f.Get(); got != 4000 {
		t.Errorf("Expected 4000, got %v", got)
	}
}

func TestAtomicStringKeepsTail(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Expected zero value to be empty")
	}
	long := strings.Repeat("d/", 40) + "track.wav"
	s.Store(long)
	got := s.Load()
	if len(got) != MaxStringLen {
		t.Errorf("Expected %d bytes, got %d", MaxStringLen, len(got))
	}
	if !strings.HasSuffix(got, "track.wav") {
		t.Errorf("Expected file name kept, got %q", got)
	}
}

func TestRegistryCachedPointers(t *testing.T) {
	r := NewRegistry()
	frames := r.Ints.Get(KeyFrames)
	if r.Ints.Get(KeyFrames) != frames {
		t.Fatal("Expected the same cell on repeated Get")
	}
	frames.Add(3)
	r.Floats.Get(KeyEnergy).Set(0.25)
	r.Strings.Get(KeyStyle).Store("mesh")
	r.Bools.Get("audio.output").Store(true)

	if r.TotalCount() != 4 {
		t.Errorf("Expected 4 cells, got %d", r.TotalCount())
	}
	snap := r.Snapshot()
	want := map[string]string{
		KeyFrames:      "3",
		KeyEnergy:      "0.250",
		KeyStyle:       "mesh",
		"audio.output": "true",
	}
	for k, v := range want {
		if snap[k] != v {
			t.Errorf("%s: expected %q, got %q", k, v, snap[k])
		}
	}
}

func TestMetricMapRangeOrder(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	for _, k := range []string{"c", "a", "b"} {
		m.Get(k)
	}
	var keys []string
	m.Range(func(k string, _ *AtomicFloat) { keys = append(keys, k) })
	if strings.Join(keys, "") != "abc" {
		t.Errorf("Expected sorted keys, got %v", keys)
	}
	if !m.Has("a") || m.Has("z") {
		t.Error("Unexpected Has result")
	}
}
