package models

import (
	"time"

	"github.com/google/uuid"
)

// NarrowCollaborationGroup is a company-defined template for recurring
// collaboration with trusted workers.
type NarrowCollaborationGroup struct {
	Versioned

	ID              uuid.UUID `json:"id"`
	CompanyID       uuid.UUID `json:"company_id"`
	Name            string    `json:"name"`
	MaxAdvanceWeeks int       `json:"max_advance_weeks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *NarrowCollaborationGroup) GetID() string {
	return g.ID.String()
}

// NarrowScheme names a weekday pattern within a group, e.g. "Mon/Wed/Fri".
type NarrowScheme struct {
	Versioned

	ID       uuid.UUID      `json:"id"`
	GroupID  uuid.UUID      `json:"group_id"`
	Name     string         `json:"name"`
	Weekdays []time.Weekday `json:"weekdays"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *NarrowScheme) GetID() string {
	return s.ID.String()
}
