package sheets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// SnapshotStore persists the last successfully fetched copy of each
// worksheet so the report can survive a transient upstream outage with
// stale data instead of failing outright.
type SnapshotStore struct {
	mu  sync.RWMutex
	dir string
}

// NewSnapshotStore creates a store rooted at dir. An empty dir disables
// persistence; Load then always misses and Save is a no-op.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

func (s *SnapshotStore) path(worksheet string) string {
	// Worksheet names are user-controlled; keep the filename flat.
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(worksheet)
	return filepath.Join(s.dir, fmt.Sprintf("%s.snapshot.json", safe))
}

// Save atomically writes the table to its snapshot file.
func (s *SnapshotStore) Save(t *Table) error {
	if s.dir == "" || t == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := s.path(t.Worksheet)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}

	log.Debug().Str("worksheet", t.Worksheet).Int("rows", len(t.Rows)).Msg("Snapshot saved")
	return nil
}

// Load reads the last saved snapshot for a worksheet. A missing snapshot
// returns (nil, nil); it is not an error to have no history yet.
func (s *SnapshotStore) Load(worksheet string) (*Table, error) {
	if s.dir == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(worksheet))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	log.Info().Str("worksheet", worksheet).Int("rows", len(t.Rows)).Msg("Loaded snapshot")
	return &t, nil
}
