// Package estimator folds classified samples into running statistics.
package estimator

import "mcpi/internal/domain"

// Record returns stats with the counter for category incremented by one.
// The π estimate is derived from the counts (see RunningStatistics.PiEstimate),
// so it is always current. Unknown categories leave stats unchanged.
func Record(stats domain.RunningStatistics, category domain.SampleCategory) domain.RunningStatistics {
	switch category {
	case domain.Inside:
		stats.Inside++
	case domain.Outside:
		stats.Outside++
	}
	return stats
}

// Merge combines two tallies, e.g. to pool independent runs.
func Merge(a, b domain.RunningStatistics) domain.RunningStatistics {
	return domain.RunningStatistics{
		Inside:  a.Inside + b.Inside,
		Outside: a.Outside + b.Outside,
	}
}
