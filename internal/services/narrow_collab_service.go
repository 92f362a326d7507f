package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/shiftpool/marketplace-backend/internal/dtos"
	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

func (s *JobService) CreateNarrowGroup(ctx context.Context, companyID uuid.UUID, req *dtos.CreateNarrowGroupRequest) (*models.NarrowCollaborationGroup, error) {
	if _, err := s.getApprovedCompany(ctx, companyID); err != nil {
		return nil, domainError(err)
	}

	group := &models.NarrowCollaborationGroup{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Name:            req.Name,
		MaxAdvanceWeeks: req.MaxAdvanceWeeks,
	}
	group.RowVersion = 1

	if err := s.narrowRepo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *JobService) ListNarrowGroups(ctx context.Context, companyID uuid.UUID) ([]*models.NarrowCollaborationGroup, error) {
	if _, err := s.getApprovedCompany(ctx, companyID); err != nil {
		return nil, domainError(err)
	}
	return s.narrowRepo.ListGroupsByCompany(ctx, companyID)
}

func (s *JobService) CreateNarrowScheme(ctx context.Context, companyID, groupID uuid.UUID, req *dtos.CreateNarrowSchemeRequest) (*models.NarrowScheme, error) {
	if _, err := s.getApprovedCompany(ctx, companyID); err != nil {
		return nil, domainError(err)
	}
	group, err := s.narrowRepo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil || group.CompanyID != companyID {
		return nil, domainError(utils.ErrNotJobOwner)
	}

	weekdays := make([]time.Weekday, 0, len(req.Weekdays))
	for _, d := range req.Weekdays {
		weekdays = append(weekdays, time.Weekday(d))
	}

	scheme := &models.NarrowScheme{
		ID:       uuid.New(),
		GroupID:  groupID,
		Name:     req.Name,
		Weekdays: weekdays,
	}
	scheme.RowVersion = 1

	if err := s.narrowRepo.CreateScheme(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// BulkApplyScheme pre-stages applications for a narrow-collaboration
// worker: every OPEN job of the group's company that falls on one of
// the scheme's weekdays, inside the group's advance horizon, skipping
// public holidays and honoring the company's next-day cutoff hour.
func (s *JobService) BulkApplyScheme(ctx context.Context, workerID, schemeID uuid.UUID) (*dtos.BulkApplyResponse, error) {
	worker, err := s.getActiveWorker(ctx, workerID)
	if err != nil {
		return nil, domainError(err)
	}

	scheme, err := s.narrowRepo.GetSchemeByID(ctx, schemeID)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, domainError(utils.ErrApplicationNotFound)
	}
	group, err := s.narrowRepo.GetGroupByID(ctx, scheme.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domainError(utils.ErrApplicationNotFound)
	}

	company, err := s.companyRepo.GetByID(ctx, group.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domainError(utils.ErrCompanyNotFound)
	}

	rel, err := s.relRepo.GetByWorkerAndCompany(ctx, workerID, group.CompanyID)
	if err != nil {
		return nil, err
	}
	if rel == nil || !rel.IsNarrowCollaboration || rel.NarrowGroupID == nil || *rel.NarrowGroupID != group.ID {
		return nil, domainError(utils.ErrWorkerNotWorkedYet)
	}

	now := nowUTC()

	// After the cutoff hour the earliest bookable day moves from
	// tomorrow to the day after.
	earliestDay := now.AddDate(0, 0, 1)
	if now.Hour() >= company.NarrowCutoffHour {
		earliestDay = now.AddDate(0, 0, 2)
	}
	from := time.Date(earliestDay.Year(), earliestDay.Month(), earliestDay.Day(), 0, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 0, 7*group.MaxAdvanceWeeks)

	jobs, err := s.jobRepo.ListOpenByCompanyBetween(ctx, group.CompanyID, from, to)
	if err != nil {
		return nil, err
	}

	resp := &dtos.BulkApplyResponse{
		AppliedJobIDs: []uuid.UUID{},
		SkippedJobIDs: []uuid.UUID{},
	}

	for _, job := range jobs {
		if !slices.Contains(scheme.Weekdays, job.StartsAt.Weekday()) {
			continue
		}
		if utils.IsPublicHoliday(job.StartsAt) {
			resp.SkippedJobIDs = append(resp.SkippedJobIDs, job.ID)
			continue
		}
		if job.ConfirmBy != nil && !job.ConfirmBy.After(now) {
			resp.SkippedJobIDs = append(resp.SkippedJobIDs, job.ID)
			continue
		}

		ev := matching.Evaluate(worker, job)
		if !ev.All || !matching.WorkerMeetsBundle(job, worker) {
			resp.SkippedJobIDs = append(resp.SkippedJobIDs, job.ID)
			continue
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
			if errors.Is(err, utils.ErrDuplicateApplication) {
				resp.SkippedJobIDs = append(resp.SkippedJobIDs, job.ID)
				continue
			}
			return nil, err
		}
		resp.AppliedJobIDs = append(resp.AppliedJobIDs, job.ID)
	}

	return resp, nil
}
