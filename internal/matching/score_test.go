package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

func TestScoreBaseline(t *testing.T) {
	w := baseWorker()
	j := baseJob()

	// region 25 + no-VZV 5 + no-exp-req 5 + activity 0 + reliability 0
	// + no-minimum-set 5 + notice 5
	assert.Equal(t, 45, Score(w, j))
}

func TestScoreRegionMismatch(t *testing.T) {
	w := baseWorker()
	w.Region = "Kosice"
	j := baseJob()

	assert.Equal(t, 20, Score(w, j))
}

func TestScoreVZVTerms(t *testing.T) {
	w := baseWorker()
	j := baseJob()
	j.RequiresVZV = true

	// baseline 45, -5 for the no-VZV bonus, -10 penalty
	assert.Equal(t, 30, Score(w, j))

	w.HasVZV = true
	// penalty replaced by +10
	assert.Equal(t, 50, Score(w, j))
}

func TestScoreExperienceTerms(t *testing.T) {
	w := baseWorker() // BASIC
	j := baseJob()
	lvl := models.ExperienceIntermediate
	j.MinExperienceLevel = &lvl

	// baseline 45, no-req +5 replaced by -10
	assert.Equal(t, 30, Score(w, j))

	w.ExperienceLevel = models.ExperienceAdvanced
	// -10 replaced by +20
	assert.Equal(t, 60, Score(w, j))
}

func TestScorePayHeadroom(t *testing.T) {
	w := baseWorker()
	w.MinHourlyRateEur = ptrF(8)
	j := baseJob() // pays 10

	// no-minimum +5 replaced by headroom +2
	assert.Equal(t, 42, Score(w, j))

	// headroom is capped at 10
	j.HourlyRateEur = 50
	assert.Equal(t, 50, Score(w, j))
}

func TestScoreUrgentMultipliesBeforeLateTerms(t *testing.T) {
	w := baseWorker()
	w.ReliabilityScore = 10
	j := baseJob()
	j.IsUrgent = true

	// pre-urgent: 25+5+5+0+10+5 = 50; x1.1 = 55; +min(10,5)=5; +notice 5
	assert.Equal(t, 65, Score(w, j))
}

func TestScoreContractPreferenceBonus(t *testing.T) {
	w := baseWorker()
	w.PreferredContractType = ptrCT(models.ContractEmployment)
	j := baseJob()

	assert.Equal(t, 55, Score(w, j))
}

// The preference bonus evaluates without rate enforcement: a worker
// priced out of the job still gets it.
func TestScoreContractPreferenceIgnoresMinRate(t *testing.T) {
	w := baseWorker()
	w.PreferredContractType = ptrCT(models.ContractEmployment)
	w.MinHourlyRateEur = ptrF(50)
	j := baseJob()

	// 25+5+5+0+0 (no surviving offer, no headroom term) +10 pref +5 notice
	assert.Equal(t, 50, Score(w, j))
}

// Bundle rejection: a worker with 2 available weekdays against
// bundleMinDays=3 scores at least 25 below the equivalent non-bundle job.
func TestScoreBundleRejectionPenalty(t *testing.T) {
	w := baseWorker()
	w.AvailableWeekdays = []time.Weekday{time.Monday, time.Tuesday}

	plain := baseJob()
	bundle := baseJob()
	bundle.IsBundle = true
	bundle.BundleMinDays = ptrI(3)

	plainScore := Score(w, plain)
	bundleScore := Score(w, bundle)
	assert.False(t, WorkerMeetsBundle(bundle, w))
	assert.LessOrEqual(t, bundleScore, plainScore-25)
}

func TestScoreBundleBonusForMetBundle(t *testing.T) {
	w := baseWorker() // 3 weekdays
	w.ReliabilityScore = 20
	bundle := baseJob()
	bundle.IsBundle = true
	bundle.BundleMinDays = ptrI(3)

	// 25+5+5+0+min(20,15)=15+5 = 55; bundle +min(20,10)=10; notice +5
	assert.Equal(t, 70, Score(w, bundle))
}

// Score bounds: every combination stays inside [0, 100].
func TestScoreBounds(t *testing.T) {
	regions := []string{"Bratislava", "Kosice"}
	levels := []models.ExperienceLevelType{
		models.ExperienceNone, models.ExperienceBasic,
		models.ExperienceIntermediate, models.ExperienceAdvanced,
	}
	scores := []int{0, 7, 15, 40, 100}
	bools := []bool{false, true}

	for _, region := range regions {
		for _, lvl := range levels {
			for _, act := range scores {
				for _, rel := range scores {
					for _, urgent := range bools {
						for _, bundle := range bools {
							w := baseWorker()
							w.Region = region
							w.ExperienceLevel = lvl
							w.ActivityScore = act
							w.ReliabilityScore = rel
							w.HasVZV = urgent // arbitrary variation

							j := baseJob()
							j.RequiresVZV = bundle
							j.IsUrgent = urgent
							j.IsBundle = bundle
							j.BundleMinDays = ptrI(5)
							req := models.ExperienceIntermediate
							j.MinExperienceLevel = &req

							s := Score(w, j)
							assert.GreaterOrEqual(t, s, 0)
							assert.LessOrEqual(t, s, 100)
						}
					}
				}
			}
		}
	}
}

// Determinism: the score is the ranking key and is snapshotted on
// applications, so the same inputs must always produce the same value.
func TestScoreDeterministic(t *testing.T) {
	w := baseWorker()
	w.ActivityScore = 12
	w.ReliabilityScore = 9
	j := baseJob()
	j.IsUrgent = true

	first := Score(w, j)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Score(w, j))
	}
}
