package matching

import (
	"math"
	"time"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

// IsLateCancellation reports whether cancelling at `now` falls inside
// the job's notice window, i.e. fewer hours remain before the shift
// starts than the window requires. A job already past its start time is
// always a late cancellation.
func IsLateCancellation(job *models.Job, now time.Time) bool {
	return job.StartsAt.Sub(now).Hours() < float64(job.NoticeWindow.Hours())
}

// ClampCompensationPct forces a compensation percentage into [0, 100].
// Out-of-range input is clamped rather than rejected.
func ClampCompensationPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// CompensationEur computes the payout owed for a late company
// cancellation, rounded to cents.
func CompensationEur(hourlyRateEur, durationHours float64, pct int) float64 {
	raw := hourlyRateEur * durationHours * float64(pct) / 100.0
	return math.Round(raw*100) / 100
}

// CancellationOutcome is the decided fate of one application when its
// job is cancelled by the company.
type CancellationOutcome struct {
	Status          models.ApplicationStatusType
	CompensationEur float64
}

// CompanyCancellationOutcome classifies one application for a company
// cancellation. Returns nil for applications that are not PENDING or
// CONFIRMED: those are left untouched. The classification happens once,
// at cancellation time, and is never recomputed.
func CompanyCancellationOutcome(
	app *models.JobApplication,
	job *models.Job,
	worker *models.Worker,
	late bool,
) *CancellationOutcome {
	if !app.Status.IsOpen() {
		return nil
	}

	isLateConfirmed := app.Status == models.ApplicationConfirmed && late
	if !isLateConfirmed {
		return &CancellationOutcome{Status: models.ApplicationCancelledByCompany}
	}

	out := &CancellationOutcome{Status: models.ApplicationCompanyCanceledLate}
	if job.CancellationCompensationPct > 0 {
		rate := job.HourlyRateEur
		if worker != nil {
			if ev := Evaluate(worker, job); ev.Offer != nil {
				rate = ev.Offer.HourlyRateEur
			}
		}
		out.CompensationEur = CompensationEur(rate, job.ShiftDurationHours(), job.CancellationCompensationPct)
	}
	return out
}

// WorkerCancellationStatus classifies a worker-initiated cancellation.
// Workers never receive compensation for their own cancellations.
func WorkerCancellationStatus(late bool) models.ApplicationStatusType {
	if late {
		return models.ApplicationWorkerCanceledLate
	}
	return models.ApplicationCancelledByWorker
}
