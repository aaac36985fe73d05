package grid

import "sync"

// Synced serializes insertions into a Grid so several goroutines can fill it.
// Order within a cell follows lock acquisition, not goroutine start order.
type Synced struct {
	mu   sync.Mutex
	grid *Grid
}

// NewSynced wraps g. The caller must not touch g directly until filling is done.
func NewSynced(g *Grid) *Synced {
	return &Synced{grid: g}
}

// Add inserts e under the grid lock.
func (s *Synced) Add(e Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Add(e)
}

// Unwrap returns the underlying grid.
func (s *Synced) Unwrap() *Grid {
	return s.grid
}
