package field

import "sync/atomic"

// Set is one generated batch of points with the inputs that produced it
// Never mutated after publication
type Set struct {
	Seed        uint32
	PaletteSize int
	Points      []ControlPoint
}

func (s *Set) matches(seed uint32, count, paletteSize int) bool {
	return s.Seed == seed && len(s.Points) == count && s.PaletteSize == paletteSize
}

// Store publishes point sets with an atomic swap
// Readers holding a *Set keep a consistent batch while a regeneration replaces it
type Store struct {
	current     atomic.Pointer[Set]
	generations atomic.Int64
}

// Load returns the current set, nil before the first Ensure
func (s *Store) Load() *Set {
	return s.current.Load()
}

// Ensure returns a set for (seed, count, paletteSize), regenerating the whole batch if the
// current one was built from different inputs
func (s *Store) Ensure(seed uint32, count, paletteSize int) *Set {
	if cur := s.current.Load(); cur != nil && cur.matches(seed, count, paletteSize) {
		return cur
	}
	return s.Regenerate(seed, count, paletteSize)
}

// Regenerate unconditionally builds and publishes a fresh set
func (s *Store) Regenerate(seed uint32, count, paletteSize int) *Set {
	next := &Set{
		Seed:        seed,
		PaletteSize: paletteSize,
		Points:      Generate(seed, count, paletteSize),
	}
	s.current.Store(next)
	s.generations.Add(1)
	return next
}

// Generations returns how many sets have been published
func (s *Store) Generations() int64 {
	return s.generations.Load()
}
