// internal/stroke/store.go
package stroke

import (
	"github.com/bethropolis/slate/internal/logger"
)

// Store is the ordered stroke collection, creation order. Draw order is the
// compositor's concern, not the store's.
type Store struct {
	strokes []*Stroke
}

// NewStore creates an empty stroke store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a completed stroke.
func (s *Store) Add(st *Stroke) {
	s.strokes = append(s.strokes, st)
	logger.DebugTagf("stroke", "Store: added stroke with %d samples (total %d)", len(st.Samples), len(s.strokes))
}

// All returns the strokes in creation order. Callers must not mutate.
func (s *Store) All() []*Stroke {
	return s.strokes
}

// Len returns the number of strokes.
func (s *Store) Len() int {
	return len(s.strokes)
}

// Replace swaps the whole collection, clear-then-append. Used on load.
func (s *Store) Replace(strokes []*Stroke) {
	s.strokes = append(s.strokes[:0:0], strokes...)
	logger.DebugTagf("stroke", "Store: replaced contents (%d strokes)", len(s.strokes))
}

// Clear empties the store. Returns true if anything was removed.
func (s *Store) Clear() bool {
	if len(s.strokes) == 0 {
		return false
	}
	s.strokes = nil
	return true
}
