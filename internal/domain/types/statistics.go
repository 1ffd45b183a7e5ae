package types

import (
	"encoding/json"
	"math"
)

// RunningStatistics is the running tally of classified samples.
//
// The π estimate is always derived from the counts and never stored.
type RunningStatistics struct {
	Inside  int64 `json:"inside_count"`
	Outside int64 `json:"outside_count"`
}

// Total returns the number of recorded samples.
func (s RunningStatistics) Total() int64 { return s.Inside + s.Outside }

// PiEstimate returns 4 * inside / total, or 0 before the first sample.
func (s RunningStatistics) PiEstimate() float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return 4 * float64(s.Inside) / float64(total)
}

// AbsoluteError returns |math.Pi - PiEstimate()|.
func (s RunningStatistics) AbsoluteError() float64 {
	return math.Abs(math.Pi - s.PiEstimate())
}

// MarshalJSON includes the derived estimate for readers of snapshots.
func (s RunningStatistics) MarshalJSON() ([]byte, error) {
	type alias RunningStatistics
	return json.Marshal(struct {
		alias
		PiEstimate float64 `json:"pi_estimate"`
	}{
		alias:      alias(s),
		PiEstimate: s.PiEstimate(),
	})
}

// UnmarshalJSON reads the counts and ignores any encoded estimate.
func (s *RunningStatistics) UnmarshalJSON(data []byte) error {
	type alias RunningStatistics
	var aux alias
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = RunningStatistics(aux)
	return nil
}
