package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/constants"
	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
)

// ListOpenJobsForWorker assembles the worker's personalized feed:
// candidate OPEN jobs in the window, filtered by wave visibility,
// eligibility and the worker's optional filters, then scored,
// decorated and ranked. A job whose bundle thresholds the worker does
// not meet stays in the feed; the scoring penalty ranks it lower and
// the apply flow is what rejects it.
func (s *JobService) ListOpenJobsForWorker(ctx context.Context, workerID uuid.UUID, filters *dtos.FeedFilters) ([]dtos.FeedItem, error) {
	worker, err := s.getActiveWorker(ctx, workerID)
	if err != nil {
		return nil, domainError(err)
	}

	now := nowUTC()
	windowEnd := now.Add(constants.FeedWindowDays * 24 * time.Hour)

	jobs, err := s.jobRepo.ListOpenForFeed(ctx, now, windowEnd)
	if err != nil {
		return nil, err
	}

	relations, err := s.relRepo.MapByWorkerID(ctx, workerID)
	if err != nil {
		return nil, err
	}

	// HasWorkedConfirmed is per company; cache it across jobs of the
	// same company.
	workedByCompany := make(map[uuid.UUID]bool)

	items := make([]dtos.FeedItem, 0, len(jobs))
	for _, job := range jobs {
		stage := matching.EffectiveStage(job.WaveStage, job.WaveStartedAt, now)

		rel := relations[job.CompanyID]
		audience := matching.WaveAudience{}
		if rel != nil {
			audience.IsPriority = rel.IsPriority
		}
		worked, cached := workedByCompany[job.CompanyID]
		if !cached {
			worked, err = s.appRepo.HasWorkedConfirmed(ctx, workerID, job.CompanyID)
			if err != nil {
				return nil, err
			}
			workedByCompany[job.CompanyID] = worked
		}
		audience.HasWorked = worked

		if !matching.CanWorkerSeeWave(stage, audience) {
			continue
		}

		ev := matching.Evaluate(worker, job)
		if ev.Offer == nil {
			continue
		}

		if !feedFilterAllows(filters, job, ev.Offer, rel) {
			continue
		}

		item := dtos.FeedItem{
			Job:                  job,
			Offer:                ev.Offer,
			MatchScore:           matching.Score(worker, job),
			EstimatedEarningsEur: estimatedEarnings(job, ev.Offer),
			HasWorkedWithCompany: worked,
			WaveStage:            stage,
		}
		if rel != nil {
			item.IsFavoriteCompany = rel.IsFavorite
			item.IsPriorityCompany = rel.IsPriority
			item.IsNarrowCollaboration = rel.IsNarrowCollaboration
		}
		items = append(items, item)
	}

	// Rank: score, then start time, then job ID as a stable tiebreak.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].MatchScore != items[j].MatchScore {
			return items[i].MatchScore > items[j].MatchScore
		}
		if !items[i].Job.StartsAt.Equal(items[j].Job.StartsAt) {
			return items[i].Job.StartsAt.Before(items[j].Job.StartsAt)
		}
		return items[i].Job.ID.String() < items[j].Job.ID.String()
	})

	return items, nil
}

// feedFilterAllows applies the worker's optional feed filters to one
// eligible job. The contract-type filter matches against the resolved
// offer, not the job's raw allowance.
func feedFilterAllows(f *dtos.FeedFilters, job *models.Job, offer *matching.Offer, rel *models.WorkerCompanyRelation) bool {
	if f == nil {
		return true
	}
	if f.ContractType != nil && offer.ContractType != *f.ContractType {
		return false
	}
	if f.NoticeWindow != nil && job.NoticeWindow != *f.NoticeWindow {
		return false
	}
	if f.IsUrgent != nil && job.IsUrgent != *f.IsUrgent {
		return false
	}
	if f.IsBundle != nil && job.IsBundle != *f.IsBundle {
		return false
	}
	if f.HasBonus != nil {
		hasBonus := (job.IsUrgent && job.UrgentBonusEur > 0) || (job.IsBundle && job.BundleBonusEur > 0)
		if hasBonus != *f.HasBonus {
			return false
		}
	}
	if f.FavoritesOnly && (rel == nil || !rel.IsFavorite) {
		return false
	}
	if f.City != "" && !strings.EqualFold(job.City, f.City) {
		return false
	}
	return true
}
