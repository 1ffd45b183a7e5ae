package store

import (
	"path/filepath"
	"sort"
	"sync"

	"mcpi/internal/domain"
)

const runsFilename = "runs.json"

// RunFileStore persists run records to disk.
type RunFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewRunFileStore returns a RunFileStore rooted at dir.
func NewRunFileStore(dir string) *RunFileStore {
	return &RunFileStore{dir: dir}
}

// SaveRun writes rec, replacing any record with the same ID.
func (s *RunFileStore) SaveRun(rec domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, runsFilename)
	runs := map[string]domain.RunRecord{}
	if err := readJSON(path, &runs); err != nil {
		return err
	}
	runs[rec.ID] = rec
	return writeJSON(path, runs, 0o600)
}

// LoadRun retrieves the record for id.
func (s *RunFileStore) LoadRun(id string) (domain.RunRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := map[string]domain.RunRecord{}
	if err := readJSON(filepath.Join(s.dir, runsFilename), &runs); err != nil {
		return domain.RunRecord{}, false, err
	}
	rec, ok := runs[id]
	return rec, ok, nil
}

// ListRuns returns every record, most recently started first.
func (s *RunFileStore) ListRuns() ([]domain.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runs := map[string]domain.RunRecord{}
	if err := readJSON(filepath.Join(s.dir, runsFilename), &runs); err != nil {
		return nil, err
	}
	out := make([]domain.RunRecord, 0, len(runs))
	for _, rec := range runs {
		out = append(out, rec)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(runs []domain.RunRecord) {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
}

// Compile-time assertion that RunFileStore implements domain.RunStore.
var _ domain.RunStore = (*RunFileStore)(nil)
