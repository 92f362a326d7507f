package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// domainError maps the repository/domain sentinels onto the HTTP-facing
// AppError the controllers hand to HandleAppError. Unknown errors pass
// through and surface as 500s.
func domainError(err error) error {
	if err == nil {
		return nil
	}

	status := 0
	code := ""

	switch {
	case errors.Is(err, utils.ErrWorkerNotFound),
		errors.Is(err, utils.ErrCompanyNotFound),
		errors.Is(err, utils.ErrJobNotFound),
		errors.Is(err, utils.ErrApplicationNotFound):
		status, code = http.StatusNotFound, utils.ErrCodeNotFound

	case errors.Is(err, utils.ErrNotJobOwner):
		status, code = http.StatusForbidden, utils.ErrCodeForbidden

	case errors.Is(err, utils.ErrOnboardingIncomplete),
		errors.Is(err, utils.ErrCompanyNotApproved),
		errors.Is(err, utils.ErrJobNotOpen),
		errors.Is(err, utils.ErrConfirmByExpired),
		errors.Is(err, utils.ErrWaveNotVisible),
		errors.Is(err, utils.ErrWorkerNotWorkedYet):
		status, code = http.StatusPreconditionFailed, utils.ErrCodePreconditionFailed

	case errors.Is(err, utils.ErrContractMismatch),
		errors.Is(err, utils.ErrRateBelowMinimum),
		errors.Is(err, utils.ErrBundleThresholdUnmet),
		errors.Is(err, utils.ErrNoticeWindowUnmet):
		status, code = http.StatusUnprocessableEntity, utils.ErrCodeNotEligible

	case errors.Is(err, utils.ErrDuplicateApplication),
		errors.Is(err, utils.ErrCapacityReached):
		status, code = http.StatusConflict, utils.ErrCodeConflict

	case errors.Is(err, utils.ErrInvalidStatusTransition),
		errors.Is(err, utils.ErrSlotsBelowConfirmed),
		errors.Is(err, utils.ErrWrongApplicationStatus),
		errors.Is(err, utils.ErrWaveRegression):
		status, code = http.StatusConflict, utils.ErrCodeInvariantViolation

	case errors.Is(err, utils.ErrRowVersionConflict):
		status, code = http.StatusConflict, utils.ErrCodeRowVersionConflict

	default:
		return err
	}

	return &utils.AppError{
		StatusCode: status,
		Code:       code,
		Message:    err.Error(),
		Err:        err,
	}
}

// getActiveWorker loads a worker and enforces the onboarding gate every
// worker-facing operation shares.
func (s *JobService) getActiveWorker(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	worker, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, utils.ErrWorkerNotFound
	}
	if !worker.OnboardingComplete || !worker.IsReady {
		return nil, utils.ErrOnboardingIncomplete
	}
	return worker, nil
}

// getApprovedCompany loads a company and enforces approval and
// onboarding for company-facing operations.
func (s *JobService) getApprovedCompany(ctx context.Context, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, utils.ErrCompanyNotFound
	}
	if !company.OnboardingComplete {
		return nil, utils.ErrOnboardingIncomplete
	}
	if !company.IsApproved {
		return nil, utils.ErrCompanyNotApproved
	}
	return company, nil
}

// getOwnedJob loads a job and verifies the company owns it.
func (s *JobService) getOwnedJob(ctx context.Context, jobID, companyID uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, utils.ErrJobNotFound
	}
	if job.CompanyID != companyID {
		return nil, utils.ErrNotJobOwner
	}
	return job, nil
}

// waveAudience resolves the worker's standing with the job's company
// for wave-visibility checks.
func (s *JobService) waveAudience(ctx context.Context, workerID, companyID uuid.UUID, rel *models.WorkerCompanyRelation) (matching.WaveAudience, error) {
	audience := matching.WaveAudience{}
	if rel != nil {
		audience.IsPriority = rel.IsPriority
	}
	worked, err := s.appRepo.HasWorkedConfirmed(ctx, workerID, companyID)
	if err != nil {
		return audience, err
	}
	audience.HasWorked = worked
	return audience, nil
}

// estimatedEarnings snapshots the payout the worker would see for the
// offer: rate times duration, plus the urgent and bundle bonuses the
// job advertises.
func estimatedEarnings(job *models.Job, offer *matching.Offer) float64 {
	if offer == nil {
		return 0
	}
	total := offer.HourlyRateEur * job.ShiftDurationHours()
	if job.IsUrgent {
		total += job.UrgentBonusEur
	}
	if job.IsBundle {
		total += job.BundleBonusEur
	}
	return total
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
