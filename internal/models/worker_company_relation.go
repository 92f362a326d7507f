package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkerCompanyRelation holds the per-pair flags that drive wave
// visibility and feed decoration. Favorite is worker-set; priority and
// narrow-collaboration are company-set and gated on a worked-confirmed
// application with that company.
type WorkerCompanyRelation struct {
	Versioned

	ID        uuid.UUID `json:"id"`
	WorkerID  uuid.UUID `json:"worker_id"`
	CompanyID uuid.UUID `json:"company_id"`

	IsFavorite            bool       `json:"is_favorite"`
	IsPriority            bool       `json:"is_priority"`
	IsNarrowCollaboration bool       `json:"is_narrow_collaboration"`
	NarrowGroupID         *uuid.UUID `json:"narrow_group_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *WorkerCompanyRelation) GetID() string {
	return r.ID.String()
}
