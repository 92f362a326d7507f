package services

import (
	"context"

	"github.com/shiftpool/marketplace-backend/internal/models"
	"github.com/shiftpool/marketplace-backend/internal/utils"
)

// RunExpirySweep closes OPEN jobs whose confirm-by deadline or start
// time has passed without the job filling. FULL jobs are staffed and
// left alone. Runs from the cron schedule in main; one failed job does
// not stop the sweep.
func (s *JobService) RunExpirySweep(ctx context.Context) {
	now := nowUTC()

	jobs, err := s.jobRepo.ListExpired(ctx, now)
	if err != nil {
		utils.Logger.WithError(err).Error("expiry sweep: listing expired jobs failed")
		return
	}
	if len(jobs) == 0 {
		return
	}

	closed := 0
	for _, job := range jobs {
		if _, err := s.jobRepo.UpdateStatusAtomic(ctx, job.ID, models.JobStatusClosed, job.RowVersion); err != nil {
			utils.Logger.WithError(err).Warnf("expiry sweep: failed to close job %s", job.ID)
			continue
		}
		closed++
	}

	utils.Logger.Infof("expiry sweep: closed %d of %d expired jobs", closed, len(jobs))
}
