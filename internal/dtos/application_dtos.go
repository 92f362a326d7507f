package dtos

import (
	"github.com/google/uuid"
)

type ApplyRequest struct {
	JobID uuid.UUID `json:"job_id" validate:"required"`
}

type CancelApplicationRequest struct {
	RowVersion int64 `json:"row_version" validate:"required,gte=1"`
}

type DecideApplicationRequest struct {
	RowVersion int64 `json:"row_version" validate:"required,gte=1"`
}

type SetFavoriteRequest struct {
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
	Favorite  bool      `json:"favorite"`
}

type SetWorkerFlagsRequest struct {
	WorkerID      uuid.UUID  `json:"worker_id" validate:"required"`
	IsPriority    bool       `json:"is_priority"`
	IsNarrow      bool       `json:"is_narrow_collaboration"`
	NarrowGroupID *uuid.UUID `json:"narrow_group_id,omitempty"`
}

type CreateNarrowGroupRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	MaxAdvanceWeeks int    `json:"max_advance_weeks" validate:"required,gte=1,lte=12"`
}

type CreateNarrowSchemeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Weekdays []int  `json:"weekdays" validate:"required,min=1,max=7,dive,gte=0,lte=6"`
}

// BulkApplyRequest pre-stages scheme applications for every matching
// job of the company between now and the group's advance horizon.
type BulkApplyRequest struct {
	SchemeID uuid.UUID `json:"scheme_id" validate:"required"`
}

type BulkApplyResponse struct {
	AppliedJobIDs []uuid.UUID `json:"applied_job_ids"`
	SkippedJobIDs []uuid.UUID `json:"skipped_job_ids"`
}
