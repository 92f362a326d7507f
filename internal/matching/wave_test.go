package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

func TestAutoStageBoundaries(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, models.WaveStage1, AutoStage(start, start))
	assert.Equal(t, models.WaveStage1, AutoStage(start, start.Add(12*time.Hour-time.Second)))
	assert.Equal(t, models.WaveStage2, AutoStage(start, start.Add(12*time.Hour)))
	assert.Equal(t, models.WaveStage2, AutoStage(start, start.Add(24*time.Hour-time.Second)))
	assert.Equal(t, models.WaveStagePublic, AutoStage(start, start.Add(24*time.Hour)))
	assert.Equal(t, models.WaveStagePublic, AutoStage(start, start.Add(30*24*time.Hour)))
}

// Wave monotonicity: the effective stage is never earlier than the
// clock-based floor, for any stored stage at any point in time.
func TestEffectiveStageNeverRegresses(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	stages := []models.JobWaveStageType{
		models.WaveStage1, models.WaveStage2, models.WaveStagePublic,
	}
	offsets := []time.Duration{
		0, time.Hour, 12 * time.Hour, 13 * time.Hour,
		24 * time.Hour, 48 * time.Hour,
	}

	for _, stored := range stages {
		for _, off := range offsets {
			now := start.Add(off)
			eff := EffectiveStage(stored, start, now)
			auto := AutoStage(start, now)
			assert.GreaterOrEqual(t, models.WaveStageIndex(eff), models.WaveStageIndex(auto))
			assert.GreaterOrEqual(t, models.WaveStageIndex(eff), models.WaveStageIndex(stored))
		}
	}
}

func TestEffectiveStageHonorsManualAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// Manually advanced to PUBLIC one hour in: stays PUBLIC.
	eff := EffectiveStage(models.WaveStagePublic, start, start.Add(time.Hour))
	assert.Equal(t, models.WaveStagePublic, eff)

	// Stored WAVE1 after 13 hours: the clock floor wins.
	eff = EffectiveStage(models.WaveStage1, start, start.Add(13*time.Hour))
	assert.Equal(t, models.WaveStage2, eff)
}

func TestCanWorkerSeeWave(t *testing.T) {
	nobody := WaveAudience{}
	worked := WaveAudience{HasWorked: true}
	priority := WaveAudience{IsPriority: true}

	assert.True(t, CanWorkerSeeWave(models.WaveStagePublic, nobody))
	assert.True(t, CanWorkerSeeWave(models.WaveStagePublic, worked))
	assert.True(t, CanWorkerSeeWave(models.WaveStagePublic, priority))

	assert.False(t, CanWorkerSeeWave(models.WaveStage2, nobody))
	assert.True(t, CanWorkerSeeWave(models.WaveStage2, worked))
	assert.True(t, CanWorkerSeeWave(models.WaveStage2, priority))

	assert.False(t, CanWorkerSeeWave(models.WaveStage1, nobody))
	assert.False(t, CanWorkerSeeWave(models.WaveStage1, worked))
	assert.True(t, CanWorkerSeeWave(models.WaveStage1, priority))
}
