package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	Versioned

	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Region string    `json:"region"`
	City   string    `json:"city"`

	IsApproved         bool `json:"is_approved"`
	OnboardingComplete bool `json:"onboarding_complete"`

	// NarrowCutoffHour is the local hour of day after which scheme-based
	// bulk applications may no longer target the next day.
	NarrowCutoffHour int `json:"narrow_cutoff_hour"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) GetID() string {
	return c.ID.String()
}
