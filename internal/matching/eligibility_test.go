package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrCT(v models.ContractType) *models.ContractType { return &v }

func baseWorker() *models.Worker {
	return &models.Worker{
		Region:          "Bratislava",
		ExperienceLevel: models.ExperienceBasic,
		HasTradeLicense: true,
		AvailableWeekdays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday,
		},
	}
}

func baseJob() *models.Job {
	return &models.Job{
		Region:        "Bratislava",
		HourlyRateEur: 10,
		NoticeWindow:  models.NoticeWindow24h,
		Status:        models.JobStatusOpen,
	}
}

func TestEvaluatePicksHighestPayingContract(t *testing.T) {
	w := baseWorker()
	j := baseJob()
	j.PayEmploymentEur = ptrF(9)
	j.PayTradeLicenseEur = ptrF(12)

	ev := Evaluate(w, j)
	require.NotNil(t, ev.Offer)
	assert.True(t, ev.All)
	assert.Equal(t, models.ContractTradeLicense, ev.Offer.ContractType)
	assert.Equal(t, 12.0, ev.Offer.HourlyRateEur)
}

func TestEvaluateTradeLicenseGate(t *testing.T) {
	w := baseWorker()
	w.HasTradeLicense = false
	j := baseJob()
	j.ContractType = ptrCT(models.ContractTradeLicense)
	j.HourlyRateEur = 100 // rate is irrelevant to the gate

	ev := Evaluate(w, j)
	assert.False(t, ev.ContractMatch)
	assert.False(t, ev.All)
	assert.Nil(t, ev.Offer)
}

func TestEvaluateWorkerPreferenceNarrowsTypes(t *testing.T) {
	w := baseWorker()
	w.PreferredContractType = ptrCT(models.ContractEmployment)
	j := baseJob()
	j.ContractType = ptrCT(models.ContractTradeLicense)

	ev := Evaluate(w, j)
	assert.False(t, ev.ContractMatch)
	assert.Nil(t, ev.Offer)
}

func TestEvaluateMinRateFiltering(t *testing.T) {
	w := baseWorker()
	w.MinHourlyRateEur = ptrF(11)
	j := baseJob() // pays 10 on both types

	ev := Evaluate(w, j)
	assert.True(t, ev.ContractMatch, "contract still matches before rate filter")
	assert.False(t, ev.MinRateMatch)
	assert.False(t, ev.All)
	assert.Nil(t, ev.Offer)
}

func TestEvaluateTradeMinimumFallsBackToGeneral(t *testing.T) {
	w := baseWorker()
	w.PreferredContractType = ptrCT(models.ContractTradeLicense)
	w.MinHourlyRateEur = ptrF(11) // no trade-specific minimum set
	j := baseJob()

	ev := Evaluate(w, j)
	assert.False(t, ev.MinRateMatch)

	w.MinHourlyRateTradeEur = ptrF(9)
	ev = Evaluate(w, j)
	require.NotNil(t, ev.Offer)
	assert.True(t, ev.All)
}

func TestEvaluateBundleRateOverride(t *testing.T) {
	w := baseWorker()
	j := baseJob()
	j.IsBundle = true
	j.BundleHourlyRateEur = ptrF(14)
	j.PayEmploymentEur = ptrF(9)

	ev := Evaluate(w, j)
	require.NotNil(t, ev.Offer)
	assert.Equal(t, 14.0, ev.Offer.HourlyRateEur)
}

// Eligibility monotonicity: whenever All is true, the offered rate is at
// or above the worker's minimum for the offered contract type.
func TestEvaluateOfferNeverBelowMinimum(t *testing.T) {
	rates := []float64{5, 8, 10, 12, 20}
	minimums := []*float64{nil, ptrF(6), ptrF(10), ptrF(15)}

	for _, rate := range rates {
		for _, min := range minimums {
			for _, tradeMin := range minimums {
				w := baseWorker()
				w.MinHourlyRateEur = min
				w.MinHourlyRateTradeEur = tradeMin
				j := baseJob()
				j.HourlyRateEur = rate

				ev := Evaluate(w, j)
				if !ev.All {
					continue
				}
				require.NotNil(t, ev.Offer)
				if m := w.MinRateFor(ev.Offer.ContractType); m != nil {
					assert.GreaterOrEqual(t, ev.Offer.HourlyRateEur, *m)
				}
			}
		}
	}
}

func TestEvaluateIgnoringMinRateKeepsFilteredOffer(t *testing.T) {
	w := baseWorker()
	w.MinHourlyRateEur = ptrF(50)
	j := baseJob()

	assert.Nil(t, Evaluate(w, j).Offer)
	ev := EvaluateIgnoringMinRate(w, j)
	require.NotNil(t, ev.Offer)
	assert.Equal(t, 10.0, ev.Offer.HourlyRateEur)
}

func TestWorkerMeetsBundle(t *testing.T) {
	w := baseWorker() // 3 selectable weekdays
	j := baseJob()
	j.IsBundle = true
	j.BundleMinDays = ptrI(3)

	assert.True(t, WorkerMeetsBundle(j, w))

	j.BundleMinDays = ptrI(4)
	assert.False(t, WorkerMeetsBundle(j, w))

	// Hours check: 3 days x 8h default = 24h.
	j.BundleMinDays = ptrI(3)
	j.BundleMinHours = ptrI(25)
	assert.False(t, WorkerMeetsBundle(j, w))

	j.BundleMinHours = ptrI(24)
	assert.True(t, WorkerMeetsBundle(j, w))

	// Explicit duration changes the estimate.
	j.DurationHours = 10
	j.BundleMinHours = ptrI(30)
	assert.True(t, WorkerMeetsBundle(j, w))

	// Non-bundle jobs always pass.
	j2 := baseJob()
	w2 := baseWorker()
	w2.AvailableWeekdays = nil
	assert.True(t, WorkerMeetsBundle(j2, w2))
}

func TestWorkerWithEmptyAvailabilityFailsBundle(t *testing.T) {
	w := baseWorker()
	w.AvailableWeekdays = nil
	j := baseJob()
	j.IsBundle = true
	j.BundleMinDays = ptrI(1)

	assert.False(t, WorkerMeetsBundle(j, w))
}
