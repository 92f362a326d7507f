package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// CancelJob is the company-initiated cancellation: the job and every
// open application change status in a single transaction, compensation
// is computed per worker at the moment of cancellation, and the
// affected workers are notified after commit.
func (s *JobService) CancelJob(ctx context.Context, companyID, jobID uuid.UUID) (*dtos.CancelJobResponse, error) {
	company, err := s.getApprovedCompany(ctx, companyID)
	if err != nil {
		return nil, domainError(err)
	}
	job, err := s.getOwnedJob(ctx, jobID, companyID)
	if err != nil {
		return nil, domainError(err)
	}

	late := matching.IsLateCancellation(job, nowUTC())

	// Each open application needs the worker's snapshot to resolve the
	// effective rate. Preload them so the decide callback stays pure.
	apps, err := s.appRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	workers := make(map[uuid.UUID]*models.Worker, len(apps))
	for _, app := range apps {
		if !app.Status.IsOpen() {
			continue
		}
		if _, ok := workers[app.WorkerID]; ok {
			continue
		}
		w, err := s.workerRepo.GetByID(ctx, app.WorkerID)
		if err != nil {
			return nil, err
		}
		workers[app.WorkerID] = w
	}

	cancelled, affected, err := s.jobRepo.CancelJobAtomic(ctx, jobID, func(app *models.JobApplication) (models.ApplicationStatusType, float64, bool) {
		out := matching.CompanyCancellationOutcome(app, job, workers[app.WorkerID], late)
		if out == nil {
			return "", 0, false
		}
		return out.Status, out.CompensationEur, true
	})
	if err != nil {
		return nil, domainError(err)
	}

	for _, app := range affected {
		s.notifyJobCancelled(ctx, app, cancelled, company)
	}

	return &dtos.CancelJobResponse{Job: cancelled, Affected: affected}, nil
}

// notifyJobCancelled persists the in-app notification and pushes the
// email (and, for compensated workers, SMS) best-effort. Notification
// failures never roll back a committed cancellation.
func (s *JobService) notifyJobCancelled(ctx context.Context, app *models.JobApplication, job *models.Job, company *models.Company) {
	nType := models.NotificationJobCancelled
	if app.Status == models.ApplicationCompanyCanceledLate && app.CompensationEur > 0 {
		nType = models.NotificationJobCancelledLateComp
	}

	n := &models.Notification{
		ID:              uuid.New(),
		RecipientUserID: app.WorkerID,
		Type:            nType,
		JobCancelled: &models.JobCancelledPayload{
			JobID:           job.ID,
			JobTitle:        job.Title,
			CompanyName:     company.Name,
			StartsAt:        job.StartsAt,
			CompensationEur: app.CompensationEur,
		},
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		utils.Logger.WithError(err).Warn("failed to persist cancellation notification")
	}

	go s.sendCancellationMessages(app, job, company)
}
