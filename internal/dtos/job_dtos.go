package dtos

import (
	"time"

	"github.com/shiftpool/marketplace-backend/internal/matching"
	"github.com/shiftpool/marketplace-backend/internal/models"
)

type CreateJobRequest struct {
	Title         string    `json:"title" validate:"required,min=3,max=200"`
	Region        string    `json:"region" validate:"required"`
	City          string    `json:"city" validate:"required"`
	StartsAt      time.Time `json:"starts_at" validate:"required"`
	DurationHours float64   `json:"duration_hours" validate:"gte=0,lte=24"`

	RequiresVZV        bool                        `json:"requires_vzv"`
	MinExperienceLevel *models.ExperienceLevelType `json:"min_experience_level,omitempty" validate:"omitempty,oneof=NONE BASIC INTERMEDIATE ADVANCED"`

	HourlyRateEur      float64              `json:"hourly_rate_eur" validate:"required,gt=0"`
	ContractType       *models.ContractType `json:"contract_type,omitempty" validate:"omitempty,oneof=EMPLOYMENT TRADE_LICENSE"`
	PayEmploymentEur   *float64             `json:"pay_employment_eur,omitempty" validate:"omitempty,gt=0"`
	PayTradeLicenseEur *float64             `json:"pay_trade_license_eur,omitempty" validate:"omitempty,gt=0"`

	IsUrgent       bool       `json:"is_urgent"`
	UrgentBonusEur float64    `json:"urgent_bonus_eur" validate:"gte=0"`
	ConfirmBy      *time.Time `json:"confirm_by,omitempty"`

	IsBundle            bool     `json:"is_bundle"`
	BundleMinDays       *int     `json:"bundle_min_days,omitempty" validate:"omitempty,gte=1,lte=7"`
	BundleMinHours      *int     `json:"bundle_min_hours,omitempty" validate:"omitempty,gte=1"`
	BundleBonusEur      float64  `json:"bundle_bonus_eur" validate:"gte=0"`
	BundleHourlyRateEur *float64 `json:"bundle_hourly_rate_eur,omitempty" validate:"omitempty,gt=0"`

	NoticeWindow                models.NoticeWindowType `json:"notice_window" validate:"required,oneof=H12 H24 H48"`
	CancellationCompensationPct int                     `json:"cancellation_compensation_pct"`

	NeededWorkers int `json:"needed_workers" validate:"required,gte=1"`
}

type UpdateSlotsRequest struct {
	NeededWorkers int   `json:"needed_workers" validate:"required,gte=1"`
	RowVersion    int64 `json:"row_version" validate:"required,gte=1"`
}

type UpdatePolicyRequest struct {
	NoticeWindow                models.NoticeWindowType `json:"notice_window" validate:"required,oneof=H12 H24 H48"`
	CancellationCompensationPct int                     `json:"cancellation_compensation_pct"`
	RowVersion                  int64                   `json:"row_version" validate:"required,gte=1"`
}

type AdvanceWaveRequest struct {
	WaveStage  models.JobWaveStageType `json:"wave_stage" validate:"required,oneof=WAVE1 WAVE2 PUBLIC"`
	RowVersion int64                   `json:"row_version" validate:"required,gte=1"`
}

// FeedFilters narrows a worker's feed. Nil pointer fields and
// zero-value string/bool fields are inactive.
type FeedFilters struct {
	ContractType  *models.ContractType
	NoticeWindow  *models.NoticeWindowType
	IsUrgent      *bool
	IsBundle      *bool
	HasBonus      *bool
	FavoritesOnly bool
	City          string
}

// FeedItem is one job in a worker's personalized feed, decorated with
// the worker's relationship to the posting company.
type FeedItem struct {
	Job        *models.Job     `json:"job"`
	Offer      *matching.Offer `json:"offer"`
	MatchScore int             `json:"match_score"`

	EstimatedEarningsEur float64 `json:"estimated_earnings_eur"`

	IsFavoriteCompany     bool `json:"is_favorite_company"`
	IsPriorityCompany     bool `json:"is_priority_company"`
	IsNarrowCollaboration bool `json:"is_narrow_collaboration"`
	HasWorkedWithCompany  bool `json:"has_worked_with_company"`

	WaveStage models.JobWaveStageType `json:"wave_stage"`
}

type JobWithApplications struct {
	Job          *models.Job              `json:"job"`
	Applications []*models.JobApplication `json:"applications"`
}

type CancelJobResponse struct {
	Job      *models.Job              `json:"job"`
	Affected []*models.JobApplication `json:"affected_applications"`
}
