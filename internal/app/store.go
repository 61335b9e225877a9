// internal/app/store.go
package app

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bethropolis/slate/internal/logger"
	"github.com/bethropolis/slate/internal/utils"
)

const (
	strokesFile = "strokes.json"
	fieldsFile  = "fields.json"
)

// Store persists the surface's serialized blobs under a data directory.
// Writes are debounced per collection; the core guarantees only that a blob
// reflects all edits applied before serialize returned, so latest-wins here.
type Store struct {
	dir      string
	debounce time.Duration

	mutex          sync.Mutex
	strokeDeb      utils.Debouncer
	fieldDeb       utils.Debouncer
	pendingStrokes string
	pendingFields  string
}

// NewStore creates a store over dir, creating it if needed.
func NewStore(dir string, debounce time.Duration) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Errorf("Store: cannot create data dir '%s': %v", dir, err)
	}
	return &Store{dir: dir, debounce: debounce}
}

// Load reads both persisted blobs. A missing file is an empty blob.
func (s *Store) Load() (strokesBlob, fieldsBlob string) {
	return s.readFile(strokesFile), s.readFile(fieldsFile)
}

func (s *Store) readFile(name string) string {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("Store: cannot read '%s': %v", path, err)
		}
		return ""
	}
	return string(data)
}

// ScheduleStrokes queues a debounced write of the stroke blob.
func (s *Store) ScheduleStrokes(blob string) {
	s.mutex.Lock()
	s.pendingStrokes = blob
	s.mutex.Unlock()
	s.strokeDeb.Debounce(s.debounce, func() {
		s.mutex.Lock()
		pending := s.pendingStrokes
		s.mutex.Unlock()
		s.writeFile(strokesFile, pending)
	})
}

// ScheduleTextFields queues a debounced write of the field blob.
func (s *Store) ScheduleTextFields(blob string) {
	s.mutex.Lock()
	s.pendingFields = blob
	s.mutex.Unlock()
	s.fieldDeb.Debounce(s.debounce, func() {
		s.mutex.Lock()
		pending := s.pendingFields
		s.mutex.Unlock()
		s.writeFile(fieldsFile, pending)
	})
}

// Flush writes both blobs immediately, bypassing the debounce. Used on
// explicit save and on exit.
func (s *Store) Flush(strokesBlob, fieldsBlob string) {
	s.writeFile(strokesFile, strokesBlob)
	s.writeFile(fieldsFile, fieldsBlob)
}

func (s *Store) writeFile(name, blob string) {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(blob), 0644); err != nil {
		logger.Errorf("Store: write to '%s' failed: %v", path, err)
		return
	}
	logger.DebugTagf("store", "Store: wrote %d bytes to %s", len(blob), name)
}
