package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationJobCancelled         NotificationType = "JOB_CANCELLED"
	NotificationJobCancelledLateComp NotificationType = "JOB_CANCELLED_LATE_COMPENSATION"
	NotificationApplicationConfirmed NotificationType = "APPLICATION_CONFIRMED"
	NotificationApplicationRejected  NotificationType = "APPLICATION_REJECTED"
)

// JobCancelledPayload is attached to JOB_CANCELLED and
// JOB_CANCELLED_LATE_COMPENSATION notifications.
type JobCancelledPayload struct {
	JobID           uuid.UUID `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	CompanyName     string    `json:"company_name"`
	StartsAt        time.Time `json:"starts_at"`
	CompensationEur float64   `json:"compensation_eur"`
}

// ApplicationDecisionPayload is attached to APPLICATION_CONFIRMED and
// APPLICATION_REJECTED notifications.
type ApplicationDecisionPayload struct {
	JobID       uuid.UUID `json:"job_id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	StartsAt    time.Time `json:"starts_at"`
}

// Notification carries exactly one payload variant, keyed by Type.
// Each variant is a statically checked struct, not a loose meta map.
type Notification struct {
	ID              uuid.UUID        `json:"id"`
	RecipientUserID uuid.UUID        `json:"recipient_user_id"`
	Type            NotificationType `json:"type"`

	JobCancelled        *JobCancelledPayload        `json:"job_cancelled,omitempty"`
	ApplicationDecision *ApplicationDecisionPayload `json:"application_decision,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
