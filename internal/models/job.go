package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatusType string

const (
	JobStatusOpen      JobStatusType = "OPEN"
	JobStatusFull      JobStatusType = "FULL"
	JobStatusClosed    JobStatusType = "CLOSED"
	JobStatusCancelled JobStatusType = "CANCELLED"
)

type JobWaveStageType string

const (
	WaveStage1      JobWaveStageType = "WAVE1"
	WaveStage2      JobWaveStageType = "WAVE2"
	WaveStagePublic JobWaveStageType = "PUBLIC"
)

// WaveStageIndex orders the stages: WAVE1 < WAVE2 < PUBLIC.
func WaveStageIndex(s JobWaveStageType) int {
	switch s {
	case WaveStage1:
		return 0
	case WaveStage2:
		return 1
	case WaveStagePublic:
		return 2
	default:
		return 0
	}
}

type NoticeWindowType string

const (
	NoticeWindow12h NoticeWindowType = "H12"
	NoticeWindow24h NoticeWindowType = "H24"
	NoticeWindow48h NoticeWindowType = "H48"
)

// Hours returns the notice window length in hours. Unknown values fall
// back to the strictest window so a bad row never under-protects workers.
func (n NoticeWindowType) Hours() int {
	switch n {
	case NoticeWindow12h:
		return 12
	case NoticeWindow24h:
		return 24
	case NoticeWindow48h:
		return 48
	default:
		return 48
	}
}

const DefaultShiftDurationHours = 8.0

type Job struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Title     string    `json:"title"`
	Region    string    `json:"region"`
	City      string    `json:"city"`

	StartsAt      time.Time `json:"starts_at"`
	DurationHours float64   `json:"duration_hours"`

	RequiresVZV        bool                 `json:"requires_vzv"`
	MinExperienceLevel *ExperienceLevelType `json:"min_experience_level,omitempty"`

	HourlyRateEur      float64       `json:"hourly_rate_eur"`
	ContractType       *ContractType `json:"contract_type,omitempty"`
	PayEmploymentEur   *float64      `json:"pay_employment_eur,omitempty"`
	PayTradeLicenseEur *float64      `json:"pay_trade_license_eur,omitempty"`

	IsUrgent       bool       `json:"is_urgent"`
	UrgentBonusEur float64    `json:"urgent_bonus_eur"`
	ConfirmBy      *time.Time `json:"confirm_by,omitempty"`

	IsBundle            bool     `json:"is_bundle"`
	BundleMinDays       *int     `json:"bundle_min_days,omitempty"`
	BundleMinHours      *int     `json:"bundle_min_hours,omitempty"`
	BundleBonusEur      float64  `json:"bundle_bonus_eur"`
	BundleHourlyRateEur *float64 `json:"bundle_hourly_rate_eur,omitempty"`

	NoticeWindow                NoticeWindowType `json:"notice_window"`
	CancellationCompensationPct int              `json:"cancellation_compensation_pct"`

	NeededWorkers int `json:"needed_workers"`

	Status        JobStatusType    `json:"status"`
	WaveStage     JobWaveStageType `json:"wave_stage"`
	WaveStartedAt time.Time        `json:"wave_started_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) GetID() string {
	return j.ID.String()
}

// ShiftDurationHours returns the shift length, defaulting to 8 hours
// when the job does not carry an explicit duration.
func (j *Job) ShiftDurationHours() float64 {
	if j.DurationHours > 0 {
		return j.DurationHours
	}
	return DefaultShiftDurationHours
}

// IsActive reports whether the job is still in a non-terminal status.
func (j *Job) IsActive() bool {
	return j.Status == JobStatusOpen || j.Status == JobStatusFull
}

// CanTransitionTo enforces the fixed status table:
// OPEN -> {FULL, CLOSED, CANCELLED}; FULL -> {OPEN, CLOSED, CANCELLED};
// CLOSED and CANCELLED are terminal. FULL -> OPEN happens when a
// confirmed worker cancels or the slot count is raised.
func (j *Job) CanTransitionTo(next JobStatusType) bool {
	switch j.Status {
	case JobStatusOpen:
		return next == JobStatusFull || next == JobStatusClosed || next == JobStatusCancelled
	case JobStatusFull:
		return next == JobStatusOpen || next == JobStatusClosed || next == JobStatusCancelled
	default:
		return false
	}
}
