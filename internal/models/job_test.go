package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from    JobStatusType
		to      JobStatusType
		allowed bool
	}{
		{JobStatusOpen, JobStatusFull, true},
		{JobStatusOpen, JobStatusClosed, true},
		{JobStatusOpen, JobStatusCancelled, true},
		{JobStatusFull, JobStatusOpen, true},
		{JobStatusFull, JobStatusClosed, true},
		{JobStatusFull, JobStatusCancelled, true},
		{JobStatusClosed, JobStatusOpen, false},
		{JobStatusClosed, JobStatusCancelled, false},
		{JobStatusCancelled, JobStatusOpen, false},
		{JobStatusCancelled, JobStatusClosed, false},
		{JobStatusCancelled, JobStatusCancelled, false},
	}

	for _, tc := range cases {
		j := &Job{Status: tc.from}
		assert.Equal(t, tc.allowed, j.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestShiftDurationDefaultsToEight(t *testing.T) {
	j := &Job{}
	assert.Equal(t, 8.0, j.ShiftDurationHours())

	j.DurationHours = 6.5
	assert.Equal(t, 6.5, j.ShiftDurationHours())
}

func TestNoticeWindowHours(t *testing.T) {
	assert.Equal(t, 12, NoticeWindow12h.Hours())
	assert.Equal(t, 24, NoticeWindow24h.Hours())
	assert.Equal(t, 48, NoticeWindow48h.Hours())
	assert.Equal(t, 48, NoticeWindowType("BOGUS").Hours())
}

func TestExperienceLevelOrdering(t *testing.T) {
	assert.Less(t, ExperienceLevelIndex(ExperienceNone), ExperienceLevelIndex(ExperienceBasic))
	assert.Less(t, ExperienceLevelIndex(ExperienceBasic), ExperienceLevelIndex(ExperienceIntermediate))
	assert.Less(t, ExperienceLevelIndex(ExperienceIntermediate), ExperienceLevelIndex(ExperienceAdvanced))
	assert.Less(t, ExperienceLevelIndex("CORRUPT"), ExperienceLevelIndex(ExperienceNone))
}

func TestWaveStageOrdering(t *testing.T) {
	assert.Less(t, WaveStageIndex(WaveStage1), WaveStageIndex(WaveStage2))
	assert.Less(t, WaveStageIndex(WaveStage2), WaveStageIndex(WaveStagePublic))
}
