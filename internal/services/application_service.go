package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// ApplyToJob runs the full application pipeline for one worker and one
// job: precondition gates, wave visibility, eligibility, then the
// insert with score and earnings snapshots.
func (s *JobService) ApplyToJob(ctx context.Context, workerID, jobID uuid.UUID) (*models.JobApplication, error) {
	worker, err := s.getActiveWorker(ctx, workerID)
	if err != nil {
		return nil, domainError(err)
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domainError(utils.ErrJobNotFound)
	}

	now := nowUTC()
	if job.Status != models.JobStatusOpen {
		return nil, domainError(utils.ErrJobNotOpen)
	}
	if job.ConfirmBy != nil && !job.ConfirmBy.After(now) {
		return nil, domainError(utils.ErrConfirmByExpired)
	}
	if !job.StartsAt.After(now) {
		return nil, domainError(utils.ErrJobNotOpen)
	}

	rel, err := s.relRepo.GetByWorkerAndCompany(ctx, workerID, job.CompanyID)
	if err != nil {
		return nil, err
	}
	audience, err := s.waveAudience(ctx, workerID, job.CompanyID, rel)
	if err != nil {
		return nil, err
	}
	stage := matching.EffectiveStage(job.WaveStage, job.WaveStartedAt, now)
	if !matching.CanWorkerSeeWave(stage, audience) {
		return nil, domainError(utils.ErrWaveNotVisible)
	}

	// Eligibility failures surface one reason, in a fixed order:
	// contract first, then notice, then rate, then bundle.
	ev := matching.Evaluate(worker, job)
	if !ev.ContractMatch {
		return nil, domainError(utils.ErrContractMismatch)
	}
	if !ev.NoticeMatch {
		return nil, domainError(utils.ErrNoticeWindowUnmet)
	}
	if !ev.MinRateMatch {
		return nil, domainError(utils.ErrRateBelowMinimum)
	}
	if !matching.WorkerMeetsBundle(job, worker) {
		return nil, domainError(utils.ErrBundleThresholdUnmet)
	}

	app := &models.JobApplication{
		ID:                   uuid.New(),
		JobID:                job.ID,
		WorkerID:             worker.ID,
		Status:               models.ApplicationPending,
		MatchScore:           matching.Score(worker, job),
		EstimatedEarningsEur: estimatedEarnings(job, ev.Offer),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, domainError(err)
	}
	return app, nil
}

// CancelMyApplication is the worker-side cancellation. Late
// cancellation of a confirmed slot is recorded with its own status; the
// worker never owes or receives compensation.
func (s *JobService) CancelMyApplication(ctx context.Context, workerID, appID uuid.UUID, rowVersion int64) (*models.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.WorkerID != workerID {
		return nil, domainError(utils.ErrApplicationNotFound)
	}

	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domainError(utils.ErrJobNotFound)
	}

	newStatus := models.ApplicationCancelledByWorker
	if app.Status == models.ApplicationConfirmed {
		newStatus = matching.WorkerCancellationStatus(matching.IsLateCancellation(job, nowUTC()))
	}

	updated, err := s.appRepo.CancelByWorkerAtomic(ctx, appID, rowVersion, newStatus)
	if err != nil {
		return updated, domainError(err)
	}
	return updated, nil
}

func (s *JobService) ListMyApplications(ctx context.Context, workerID uuid.UUID) ([]*models.JobApplication, error) {
	return s.appRepo.ListByWorkerID(ctx, workerID)
}

// ConfirmWorkedByWorker records the worker's half of the two-sided
// worked confirmation.
func (s *JobService) ConfirmWorkedByWorker(ctx context.Context, workerID, appID uuid.UUID) (*models.JobApplication, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app == nil || app.WorkerID != workerID {
		return nil, domainError(utils.ErrApplicationNotFound)
	}

	updated, err := s.appRepo.SetWorkedConfirmed(ctx, appID, false, nowUTC())
	if err != nil {
		return nil, domainError(err)
	}
	return updated, nil
}

// SetFavoriteCompany flips the worker-owned favorite flag. Favorites
// only decorate the feed; they never change scores or wave access.
func (s *JobService) SetFavoriteCompany(ctx context.Context, workerID, companyID uuid.UUID, favorite bool) error {
	if _, err := s.getActiveWorker(ctx, workerID); err != nil {
		return domainError(err)
	}
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domainError(utils.ErrCompanyNotFound)
	}
	return s.relRepo.SetFavorite(ctx, workerID, companyID, favorite)
}
