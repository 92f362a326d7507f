package models

import (
	"time"

	"github.com/google/uuid"
)

type ContractType string

const (
	ContractEmployment   ContractType = "EMPLOYMENT"
	ContractTradeLicense ContractType = "TRADE_LICENSE"
)

// AllContractTypes is ordered: employment first, trade license second.
var AllContractTypes = []ContractType{ContractEmployment, ContractTradeLicense}

type ExperienceLevelType string

const (
	ExperienceNone         ExperienceLevelType = "NONE"
	ExperienceBasic        ExperienceLevelType = "BASIC"
	ExperienceIntermediate ExperienceLevelType = "INTERMEDIATE"
	ExperienceAdvanced     ExperienceLevelType = "ADVANCED"
)

// ExperienceLevelIndex maps the ordered levels onto comparable ints.
// Unknown values rank below NONE so a corrupt row never passes a
// job's experience requirement.
func ExperienceLevelIndex(l ExperienceLevelType) int {
	switch l {
	case ExperienceNone:
		return 0
	case ExperienceBasic:
		return 1
	case ExperienceIntermediate:
		return 2
	case ExperienceAdvanced:
		return 3
	default:
		return -1
	}
}

type ShiftTimeType string

const (
	ShiftMorning   ShiftTimeType = "MORNING"
	ShiftAfternoon ShiftTimeType = "AFTERNOON"
	ShiftNight     ShiftTimeType = "NIGHT"
)

type Worker struct {
	Versioned

	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Region string    `json:"region"`

	// Certifications
	HasVZV          bool `json:"has_vzv"`
	HasBOZP         bool `json:"has_bozp"`
	HasFoodCard     bool `json:"has_food_card"`
	HasCar          bool `json:"has_car"`
	HasTradeLicense bool `json:"has_trade_license"`

	ExperienceLevel ExperienceLevelType `json:"experience_level"`

	AvailableWeekdays   []time.Weekday  `json:"available_weekdays,omitempty"`
	AvailableShiftTimes []ShiftTimeType `json:"available_shift_times,omitempty"`

	PreferredContractType *ContractType `json:"preferred_contract_type,omitempty"`

	// MinHourlyRateEur is the general minimum, applied to employment
	// offers. MinHourlyRateTradeEur overrides it for trade-license
	// offers when set.
	MinHourlyRateEur      *float64 `json:"min_hourly_rate_eur,omitempty"`
	MinHourlyRateTradeEur *float64 `json:"min_hourly_rate_trade_eur,omitempty"`

	ActivityScore    int  `json:"activity_score"`
	ReliabilityScore int  `json:"reliability_score"`
	IsReady          bool `json:"is_ready"`

	OnboardingComplete bool `json:"onboarding_complete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *Worker) GetID() string {
	return w.ID.String()
}

// MinRateFor returns the worker's minimum acceptable hourly rate for a
// contract type, or nil when the worker has not set one.
func (w *Worker) MinRateFor(ct ContractType) *float64 {
	if ct == ContractTradeLicense && w.MinHourlyRateTradeEur != nil {
		return w.MinHourlyRateTradeEur
	}
	return w.MinHourlyRateEur
}
