package history

import (
	"fmt"

	"mcpi/internal/domain"
	"mcpi/internal/estimator"
)

// Service answers queries over saved runs.
type Service struct {
	runs domain.RunStore
}

// New constructs a history Service over runs.
func New(runs domain.RunStore) *Service {
	return &Service{runs: runs}
}

// List returns all runs, newest first.
func (s *Service) List() ([]domain.RunRecord, error) {
	return s.runs.ListRuns()
}

// Get returns the run with the given id or domain.ErrRunNotFound.
func (s *Service) Get(id string) (domain.RunRecord, error) {
	rec, ok, err := s.runs.LoadRun(id)
	if err != nil {
		return domain.RunRecord{}, err
	}
	if !ok {
		return domain.RunRecord{}, fmt.Errorf("run %q: %w", id, domain.ErrRunNotFound)
	}
	return rec, nil
}

// Pooled merges the counts of every finished run and reports how many runs
// contributed. Stopped runs are left out.
func (s *Service) Pooled() (domain.RunningStatistics, int, error) {
	runs, err := s.runs.ListRuns()
	if err != nil {
		return domain.RunningStatistics{}, 0, err
	}
	var (
		total domain.RunningStatistics
		n     int
	)
	for _, r := range runs {
		if r.Status != domain.RunFinished {
			continue
		}
		total = estimator.Merge(total, r.Statistics)
		n++
	}
	return total, n, nil
}

var _ domain.HistoryService = (*Service)(nil)
