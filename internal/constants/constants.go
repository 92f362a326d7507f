package constants

import "time"

const (
	// Wave staging: jobs are visible to priority workers for the first
	// 12 hours, to proven workers until hour 24, then to everyone.
	// Recomputed at read time, never advanced by a timer.
	Wave1Duration = 12 * time.Hour
	Wave2Duration = 24 * time.Hour

	// Feed assembly bounds its candidate set to this many days ahead.
	FeedWindowDays = 30

	// Optimistic-locking retry budget for read-mutate-update loops.
	MaxOptimisticRetries = 3

	ScoreMin = 0
	ScoreMax = 100
)
