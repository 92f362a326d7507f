package matching

import (
	"math"

	"github.com/shiftpool/marketplace-backend/internal/constants"
	"github.com/shiftpool/marketplace-backend/internal/models"
)

// Scoring weights. These are the ranking contract: the same inputs must
// always produce the same score, and the terms apply in the order they
// appear in Score.
const (
	weightRegionMatch = 25

	weightVZVNotRequired = 5
	weightVZVHeld        = 10
	weightVZVMissing     = -10

	weightExperienceMet    = 20
	weightExperienceUnmet  = -10
	weightNoExperienceReq  = 5

	activityCap    = 15
	reliabilityCap = 15

	payHeadroomCap    = 10.0
	weightNoMinSet    = 5

	urgentMultiplier     = 1.1
	urgentReliabilityCap = 5

	bundleReliabilityCap = 10
	bundleUnmetPenalty   = 25

	weightContractPreference = 10
	weightNoticeMatch        = 5
)

// Score computes the 0-100 relevance score ranking a job for a worker.
// Terms are applied strictly in order; in particular the urgent
// multiplier runs before the bundle, preference and notice terms, and
// the bundle penalty lands after the bundle reliability bonus.
func Score(worker *models.Worker, job *models.Job) int {
	score := 0.0

	if job.Region == worker.Region {
		score += weightRegionMatch
	}

	if !job.RequiresVZV {
		score += weightVZVNotRequired
	} else if worker.HasVZV {
		score += weightVZVHeld
	} else {
		score += weightVZVMissing
	}

	if job.MinExperienceLevel != nil {
		if models.ExperienceLevelIndex(worker.ExperienceLevel) >= models.ExperienceLevelIndex(*job.MinExperienceLevel) {
			score += weightExperienceMet
		} else {
			score += weightExperienceUnmet
		}
	} else {
		score += weightNoExperienceReq
	}

	score += float64(capInt(worker.ActivityScore, activityCap))
	score += float64(capInt(worker.ReliabilityScore, reliabilityCap))

	ev := Evaluate(worker, job)
	if ev.Offer != nil {
		if min := worker.MinRateFor(ev.Offer.ContractType); min != nil {
			headroom := ev.Offer.HourlyRateEur - *min
			score += math.Max(0, math.Min(payHeadroomCap, headroom))
		} else {
			score += weightNoMinSet
		}
	}

	if job.IsUrgent {
		score *= urgentMultiplier
		score += float64(capInt(worker.ReliabilityScore, urgentReliabilityCap))
	}

	if job.IsBundle {
		score += float64(capInt(worker.ReliabilityScore, bundleReliabilityCap))
		if !WorkerMeetsBundle(job, worker) {
			score -= bundleUnmetPenalty
		}
	}

	if noRate := EvaluateIgnoringMinRate(worker, job); noRate.Offer != nil &&
		worker.PreferredContractType != nil &&
		noRate.Offer.ContractType == *worker.PreferredContractType {
		score += weightContractPreference
	}

	if ev.NoticeMatch {
		score += weightNoticeMatch
	}

	rounded := int(math.Round(score))
	if rounded < constants.ScoreMin {
		return constants.ScoreMin
	}
	if rounded > constants.ScoreMax {
		return constants.ScoreMax
	}
	return rounded
}

func capInt(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}
