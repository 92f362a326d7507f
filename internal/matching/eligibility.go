// Package matching holds the pure matching core: eligibility
// evaluation, relevance scoring, wave staging and cancellation policy.
// Everything in this package is a deterministic function over entity
// snapshots; nothing here touches the store or the clock implicitly.
package matching

import (
	"github.com/shiftpool/marketplace-backend/internal/models"
)

// Offer is the contract type and hourly rate selected for a specific
// worker on a specific job after applying all eligibility rules.
type Offer struct {
	ContractType  models.ContractType `json:"contract_type"`
	HourlyRateEur float64             `json:"hourly_rate_eur"`
}

// Evaluation is the structured result of an eligibility check. It never
// carries an error; absence of a valid offer is a nil Offer, and the
// individual flags tell the caller which condition failed.
type Evaluation struct {
	ContractMatch bool   `json:"contract_match"`
	NoticeMatch   bool   `json:"notice_match"`
	MinRateMatch  bool   `json:"min_rate_match"`
	Offer         *Offer `json:"offer,omitempty"`
	All           bool   `json:"all"`
}

// RateFor resolves the hourly rate a job pays for a contract type:
// bundle override first, then the per-contract rate, then the base rate.
func RateFor(job *models.Job, ct models.ContractType) float64 {
	if job.IsBundle && job.BundleHourlyRateEur != nil {
		return *job.BundleHourlyRateEur
	}
	if ct == models.ContractEmployment && job.PayEmploymentEur != nil {
		return *job.PayEmploymentEur
	}
	if ct == models.ContractTradeLicense && job.PayTradeLicenseEur != nil {
		return *job.PayTradeLicenseEur
	}
	return job.HourlyRateEur
}

// allowedContractTypes intersects the job's allowed types with the
// worker's preference and drops TRADE_LICENSE when the worker has no
// trade license.
func allowedContractTypes(worker *models.Worker, job *models.Job) []models.ContractType {
	jobTypes := models.AllContractTypes
	if job.ContractType != nil {
		jobTypes = []models.ContractType{*job.ContractType}
	}

	var out []models.ContractType
	for _, ct := range jobTypes {
		if worker.PreferredContractType != nil && ct != *worker.PreferredContractType {
			continue
		}
		if ct == models.ContractTradeLicense && !worker.HasTradeLicense {
			continue
		}
		out = append(out, ct)
	}
	return out
}

// Evaluate determines whether the worker may be offered this job and
// at what pay, enforcing the worker's minimum rates.
func Evaluate(worker *models.Worker, job *models.Job) Evaluation {
	return evaluate(worker, job, true)
}

// EvaluateIgnoringMinRate is the "no rate enforcement" mode used for
// the contract-preference score bonus.
func EvaluateIgnoringMinRate(worker *models.Worker, job *models.Job) Evaluation {
	return evaluate(worker, job, false)
}

func evaluate(worker *models.Worker, job *models.Job, enforceMinRate bool) Evaluation {
	types := allowedContractTypes(worker, job)

	ev := Evaluation{
		ContractMatch: len(types) > 0,
		// Notice window is a cancellation-protection SLA, not an
		// application-time filter. Kept as a flag so the apply flow's
		// failure-priority ordering holds if that ever changes.
		NoticeMatch: true,
	}

	var best *Offer
	for _, ct := range types {
		rate := RateFor(job, ct)
		if enforceMinRate {
			if min := worker.MinRateFor(ct); min != nil && rate < *min {
				continue
			}
		}
		ev.MinRateMatch = true
		if best == nil || rate > best.HourlyRateEur {
			best = &Offer{ContractType: ct, HourlyRateEur: rate}
		}
	}

	ev.Offer = best
	ev.All = ev.ContractMatch && ev.NoticeMatch && ev.MinRateMatch
	return ev
}

// WorkerMeetsBundle checks the worker's availability against a bundle
// job's day and hour commitments. Non-bundle jobs always pass.
func WorkerMeetsBundle(job *models.Job, worker *models.Worker) bool {
	if !job.IsBundle {
		return true
	}
	days := len(worker.AvailableWeekdays)
	if job.BundleMinDays != nil && days < *job.BundleMinDays {
		return false
	}
	if job.BundleMinHours != nil {
		estimatedHours := float64(days) * job.ShiftDurationHours()
		if estimatedHours < float64(*job.BundleMinHours) {
			return false
		}
	}
	return true
}
