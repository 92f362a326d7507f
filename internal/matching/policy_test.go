package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

func TestIsLateCancellation(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	j := baseJob()
	j.NoticeWindow = models.NoticeWindow24h

	j.StartsAt = now.Add(10 * time.Hour)
	assert.True(t, IsLateCancellation(j, now))

	j.StartsAt = now.Add(25 * time.Hour)
	assert.False(t, IsLateCancellation(j, now))

	// Exactly at the window boundary is not late.
	j.StartsAt = now.Add(24 * time.Hour)
	assert.False(t, IsLateCancellation(j, now))

	// Past start is always late.
	j.StartsAt = now.Add(-time.Hour)
	assert.True(t, IsLateCancellation(j, now))

	j.NoticeWindow = models.NoticeWindow12h
	j.StartsAt = now.Add(13 * time.Hour)
	assert.False(t, IsLateCancellation(j, now))

	j.NoticeWindow = models.NoticeWindow48h
	assert.True(t, IsLateCancellation(j, now))
}

func TestClampCompensationPct(t *testing.T) {
	assert.Equal(t, 0, ClampCompensationPct(-5))
	assert.Equal(t, 0, ClampCompensationPct(0))
	assert.Equal(t, 37, ClampCompensationPct(37))
	assert.Equal(t, 100, ClampCompensationPct(100))
	assert.Equal(t, 100, ClampCompensationPct(250))
}

func TestCompensationEurRounding(t *testing.T) {
	assert.Equal(t, 40.0, CompensationEur(10, 8, 50))
	assert.Equal(t, 29.7, CompensationEur(11, 9, 30))
	assert.Equal(t, 0.0, CompensationEur(10, 8, 0))
	// 9.99 * 7.5 * 0.33 = 24.725... -> 24.73
	assert.Equal(t, 24.73, CompensationEur(9.99, 7.5, 33))
}

// The concrete case from the compensation policy: hourlyRate=10,
// duration=8h, pct=50, notice H24, cancelled 10 hours before start with
// one CONFIRMED application.
func TestCompanyCancellationLateConfirmed(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	j := baseJob()
	j.HourlyRateEur = 10
	j.DurationHours = 8
	j.NoticeWindow = models.NoticeWindow24h
	j.CancellationCompensationPct = 50
	j.StartsAt = now.Add(10 * time.Hour)

	w := baseWorker()
	app := &models.JobApplication{Status: models.ApplicationConfirmed}

	late := IsLateCancellation(j, now)
	require.True(t, late)

	out := CompanyCancellationOutcome(app, j, w, late)
	require.NotNil(t, out)
	assert.Equal(t, models.ApplicationCompanyCanceledLate, out.Status)
	assert.Equal(t, 40.0, out.CompensationEur)
}

func TestCompanyCancellationOutcomeTable(t *testing.T) {
	j := baseJob()
	j.CancellationCompensationPct = 50
	w := baseWorker()

	cases := []struct {
		name       string
		appStatus  models.ApplicationStatusType
		late       bool
		wantStatus models.ApplicationStatusType
		wantComp   bool
		untouched  bool
	}{
		{"pending not late", models.ApplicationPending, false, models.ApplicationCancelledByCompany, false, false},
		{"pending late", models.ApplicationPending, true, models.ApplicationCancelledByCompany, false, false},
		{"confirmed not late", models.ApplicationConfirmed, false, models.ApplicationCancelledByCompany, false, false},
		{"confirmed late", models.ApplicationConfirmed, true, models.ApplicationCompanyCanceledLate, true, false},
		{"rejected untouched", models.ApplicationRejected, true, "", false, true},
		{"worker-cancelled untouched", models.ApplicationCancelledByWorker, true, "", false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := &models.JobApplication{Status: tc.appStatus}
			out := CompanyCancellationOutcome(app, j, w, tc.late)
			if tc.untouched {
				assert.Nil(t, out)
				return
			}
			require.NotNil(t, out)
			assert.Equal(t, tc.wantStatus, out.Status)
			if tc.wantComp {
				assert.Greater(t, out.CompensationEur, 0.0)
			} else {
				assert.Zero(t, out.CompensationEur)
			}
		})
	}
}

// A worker-specific offer overrides the base rate in the compensation
// calculation; with no resolvable offer the base rate is the fallback.
func TestCompanyCancellationUsesEffectiveRate(t *testing.T) {
	j := baseJob()
	j.HourlyRateEur = 10
	j.PayTradeLicenseEur = ptrF(12)
	j.DurationHours = 8
	j.CancellationCompensationPct = 50

	w := baseWorker() // has trade license, picks the 12 EUR offer
	app := &models.JobApplication{Status: models.ApplicationConfirmed}

	out := CompanyCancellationOutcome(app, j, w, true)
	require.NotNil(t, out)
	assert.Equal(t, 48.0, out.CompensationEur)

	// Worker priced out of every offer: base rate fallback.
	w2 := baseWorker()
	w2.MinHourlyRateEur = ptrF(99)
	out2 := CompanyCancellationOutcome(app, j, w2, true)
	require.NotNil(t, out2)
	assert.Equal(t, 40.0, out2.CompensationEur)
}

func TestWorkerCancellationStatus(t *testing.T) {
	assert.Equal(t, models.ApplicationWorkerCanceledLate, WorkerCancellationStatus(true))
	assert.Equal(t, models.ApplicationCancelledByWorker, WorkerCancellationStatus(false))
}
