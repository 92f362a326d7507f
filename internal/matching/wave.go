package matching

import (
	"time"

	"github.com/shiftpool/marketplace-backend/internal/constants"
	"github.com/shiftpool/marketplace-backend/internal/models"
)

// AutoStage computes the clock-based wave floor: WAVE1 for the first 12
// hours after waveStartedAt, WAVE2 until hour 24, PUBLIC afterwards.
func AutoStage(waveStartedAt, now time.Time) models.JobWaveStageType {
	elapsed := now.Sub(waveStartedAt)
	switch {
	case elapsed < constants.Wave1Duration:
		return models.WaveStage1
	case elapsed < constants.Wave2Duration:
		return models.WaveStage2
	default:
		return models.WaveStagePublic
	}
}

// EffectiveStage is max(stored, auto) under WAVE1 < WAVE2 < PUBLIC: a
// company may advance a job's wave early, but the stage never regresses
// and the time-based floor always applies.
func EffectiveStage(stored models.JobWaveStageType, waveStartedAt, now time.Time) models.JobWaveStageType {
	auto := AutoStage(waveStartedAt, now)
	if models.WaveStageIndex(stored) > models.WaveStageIndex(auto) {
		return stored
	}
	return auto
}

// WaveAudience is what the resolver needs to know about a worker's
// standing with the job's company.
type WaveAudience struct {
	IsPriority bool
	HasWorked  bool
}

// CanWorkerSeeWave: PUBLIC is visible to everyone, WAVE2 to workers who
// have worked for the company before or are flagged priority, WAVE1
// only to priority workers.
func CanWorkerSeeWave(stage models.JobWaveStageType, audience WaveAudience) bool {
	switch stage {
	case models.WaveStagePublic:
		return true
	case models.WaveStage2:
		return audience.HasWorked || audience.IsPriority
	case models.WaveStage1:
		return audience.IsPriority
	default:
		return false
	}
}
