package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatusType string

const (
	ApplicationPending             ApplicationStatusType = "PENDING"
	ApplicationConfirmed           ApplicationStatusType = "CONFIRMED"
	ApplicationRejected            ApplicationStatusType = "REJECTED"
	ApplicationCancelledByWorker   ApplicationStatusType = "CANCELLED_BY_WORKER"
	ApplicationCancelledByCompany  ApplicationStatusType = "CANCELLED_BY_COMPANY"
	ApplicationWorkerCanceledLate  ApplicationStatusType = "WORKER_CANCELED_LATE"
	ApplicationCompanyCanceledLate ApplicationStatusType = "COMPANY_CANCELED_LATE"
)

// IsOpen reports whether the application still occupies a slot in the
// job's lifecycle, i.e. it can still be affected by a job cancellation.
func (s ApplicationStatusType) IsOpen() bool {
	return s == ApplicationPending || s == ApplicationConfirmed
}

// JobApplication links one worker to one job. The (job_id, worker_id)
// pair is unique in the store.
type JobApplication struct {
	Versioned

	ID       uuid.UUID `json:"id"`
	JobID    uuid.UUID `json:"job_id"`
	WorkerID uuid.UUID `json:"worker_id"`

	Status ApplicationStatusType `json:"status"`

	// Snapshots taken at apply time, kept for audit.
	MatchScore           int     `json:"match_score"`
	EstimatedEarningsEur float64 `json:"estimated_earnings_eur"`

	// CompensationEur is nonzero only for COMPANY_CANCELED_LATE.
	CompensationEur float64 `json:"compensation_eur"`

	WorkedConfirmedByCompanyAt *time.Time `json:"worked_confirmed_by_company_at,omitempty"`
	WorkedConfirmedByWorkerAt  *time.Time `json:"worked_confirmed_by_worker_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *JobApplication) GetID() string {
	return a.ID.String()
}

// WorkedConfirmed requires both sides to have confirmed the shift.
func (a *JobApplication) WorkedConfirmed() bool {
	return a.WorkedConfirmedByCompanyAt != nil && a.WorkedConfirmedByWorkerAt != nil
}
