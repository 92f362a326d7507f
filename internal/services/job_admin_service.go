package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// CreateJob publishes a new OPEN job for the company. The wave clock
// starts immediately.
func (s *JobService) CreateJob(ctx context.Context, companyID uuid.UUID, req *dtos.CreateJobRequest) (*models.Job, error) {
	company, err := s.getApprovedCompany(ctx, companyID)
	if err != nil {
		return nil, domainError(err)
	}

	now := nowUTC()
	job := &models.Job{
		ID:        uuid.New(),
		CompanyID: company.ID,
		Title:     req.Title,
		Region:    req.Region,
		City:      req.City,

		StartsAt:      req.StartsAt,
		DurationHours: req.DurationHours,

		RequiresVZV:        req.RequiresVZV,
		MinExperienceLevel: req.MinExperienceLevel,

		HourlyRateEur:      req.HourlyRateEur,
		ContractType:       req.ContractType,
		PayEmploymentEur:   req.PayEmploymentEur,
		PayTradeLicenseEur: req.PayTradeLicenseEur,

		IsUrgent:       req.IsUrgent,
		UrgentBonusEur: req.UrgentBonusEur,
		ConfirmBy:      req.ConfirmBy,

		IsBundle:            req.IsBundle,
		BundleMinDays:       req.BundleMinDays,
		BundleMinHours:      req.BundleMinHours,
		BundleBonusEur:      req.BundleBonusEur,
		BundleHourlyRateEur: req.BundleHourlyRateEur,

		NoticeWindow:                req.NoticeWindow,
		CancellationCompensationPct: matching.ClampCompensationPct(req.CancellationCompensationPct),

		NeededWorkers: req.NeededWorkers,

		Status:        models.JobStatusOpen,
		WaveStage:     models.WaveStage1,
		WaveStartedAt: now,
	}
	job.RowVersion = 1

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *JobService) ListCompanyJobs(ctx context.Context, companyID uuid.UUID) ([]*models.Job, error) {
	if _, err := s.getApprovedCompany(ctx, companyID); err != nil {
		return nil, domainError(err)
	}
	return s.jobRepo.ListByCompanyID(ctx, companyID)
}

func (s *JobService) GetJobWithApplications(ctx context.Context, companyID, jobID uuid.UUID) (*dtos.JobWithApplications, error) {
	job, err := s.getOwnedJob(ctx, jobID, companyID)
	if err != nil {
		return nil, domainError(err)
	}
	apps, err := s.appRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &dtos.JobWithApplications{Job: job, Applications: apps}, nil
}

// UpdateSlots resizes the job. The repository re-derives OPEN/FULL
// from the confirmed count under the same lock.
func (s *JobService) UpdateSlots(ctx context.Context, companyID, jobID uuid.UUID, req *dtos.UpdateSlotsRequest) (*models.Job, error) {
	if _, err := s.getOwnedJob(ctx, jobID, companyID); err != nil {
		return nil, domainError(err)
	}
	job, err := s.jobRepo.UpdateSlotsAtomic(ctx, jobID, req.RowVersion, req.NeededWorkers)
	if err != nil {
		return job, domainError(err)
	}
	return job, nil
}

// UpdatePolicy changes the notice window and compensation percentage.
// The policy applies live: cancellations are always judged against the
// job's current policy, not the one at application time.
func (s *JobService) UpdatePolicy(ctx context.Context, companyID, jobID uuid.UUID, req *dtos.UpdatePolicyRequest) (*models.Job, error) {
	if _, err := s.getOwnedJob(ctx, jobID, companyID); err != nil {
		return nil, domainError(err)
	}
	pct := matching.ClampCompensationPct(req.CancellationCompensationPct)
	job, err := s.jobRepo.UpdatePolicyAtomic(ctx, jobID, req.RowVersion, req.NoticeWindow, pct)
	if err != nil {
		return job, domainError(err)
	}
	return job, nil
}

// AdvanceWave lets the company open the job to a wider audience ahead
// of the clock. The stored stage never moves backwards.
func (s *JobService) AdvanceWave(ctx context.Context, companyID, jobID uuid.UUID, req *dtos.AdvanceWaveRequest) (*models.Job, error) {
	if _, err := s.getOwnedJob(ctx, jobID, companyID); err != nil {
		return nil, domainError(err)
	}
	job, err := s.jobRepo.AdvanceWaveAtomic(ctx, jobID, req.RowVersion, req.WaveStage)
	if err != nil {
		return job, domainError(err)
	}
	return job, nil
}

// CloseJob ends recruiting without penalties. Existing applications
// keep their statuses.
func (s *JobService) CloseJob(ctx context.Context, companyID, jobID uuid.UUID, rowVersion int64) (*models.Job, error) {
	if _, err := s.getOwnedJob(ctx, jobID, companyID); err != nil {
		return nil, domainError(err)
	}
	job, err := s.jobRepo.UpdateStatusAtomic(ctx, jobID, models.JobStatusClosed, rowVersion)
	if err != nil {
		return job, domainError(err)
	}
	return job, nil
}

// ConfirmApplication accepts a pending application under the job's
// capacity, then notifies the worker.
func (s *JobService) ConfirmApplication(ctx context.Context, companyID, appID uuid.UUID, rowVersion int64) (*models.JobApplication, error) {
	_, job, err := s.getOwnedApplication(ctx, companyID, appID)
	if err != nil {
		return nil, domainError(err)
	}

	updated, err := s.appRepo.ConfirmAtomic(ctx, appID, rowVersion)
	if err != nil {
		return updated, domainError(err)
	}

	s.notifyApplicationDecision(ctx, updated, job, models.NotificationApplicationConfirmed)
	return updated, nil
}

// RejectApplication declines a pending application and notifies the
// worker.
func (s *JobService) RejectApplication(ctx context.Context, companyID, appID uuid.UUID, rowVersion int64) (*models.JobApplication, error) {
	_, job, err := s.getOwnedApplication(ctx, companyID, appID)
	if err != nil {
		return nil, domainError(err)
	}

	updated, err := s.appRepo.RejectAtomic(ctx, appID, rowVersion)
	if err != nil {
		return updated, domainError(err)
	}

	s.notifyApplicationDecision(ctx, updated, job, models.NotificationApplicationRejected)
	return updated, nil
}

// ConfirmWorkedByCompany records the company's half of the worked
// confirmation.
func (s *JobService) ConfirmWorkedByCompany(ctx context.Context, companyID, appID uuid.UUID) (*models.JobApplication, error) {
	if _, _, err := s.getOwnedApplication(ctx, companyID, appID); err != nil {
		return nil, domainError(err)
	}
	updated, err := s.appRepo.SetWorkedConfirmed(ctx, appID, true, nowUTC())
	if err != nil {
		return nil, domainError(err)
	}
	return updated, nil
}

// SetWorkerFlags updates the company-owned relation flags. Priority
// and narrow collaboration are earned: the worker must have a
// worked-confirmed shift with this company first.
func (s *JobService) SetWorkerFlags(ctx context.Context, companyID uuid.UUID, req *dtos.SetWorkerFlagsRequest) error {
	if _, err := s.getApprovedCompany(ctx, companyID); err != nil {
		return domainError(err)
	}
	worker, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return err
	}
	if worker == nil {
		return domainError(utils.ErrWorkerNotFound)
	}

	if req.IsPriority || req.IsNarrow {
		worked, err := s.appRepo.HasWorkedConfirmed(ctx, req.WorkerID, companyID)
		if err != nil {
			return err
		}
		if !worked {
			return domainError(utils.ErrWorkerNotWorkedYet)
		}
	}

	if req.IsNarrow && req.NarrowGroupID != nil {
		group, err := s.narrowRepo.GetGroupByID(ctx, *req.NarrowGroupID)
		if err != nil {
			return err
		}
		if group == nil || group.CompanyID != companyID {
			return domainError(utils.ErrNotJobOwner)
		}
	}

	var groupID *uuid.UUID
	if req.IsNarrow {
		groupID = req.NarrowGroupID
	}
	return s.relRepo.SetCompanyFlags(ctx, req.WorkerID, companyID, req.IsPriority, req.IsNarrow, groupID)
}

// getOwnedApplication resolves an application together with its job and
// verifies the company owns that job.
func (s *JobService) getOwnedApplication(ctx context.Context, companyID, appID uuid.UUID) (*models.JobApplication, *models.Job, error) {
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, utils.ErrApplicationNotFound
	}
	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, utils.ErrJobNotFound
	}
	if job.CompanyID != companyID {
		return nil, nil, utils.ErrNotJobOwner
	}
	return app, job, nil
}
