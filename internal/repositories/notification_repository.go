package repositories

import (
	"context"
	"encoding/json"

	"github.com/shiftpool/marketplace-backend/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	var payload interface{}
	switch {
	case n.JobCancelled != nil:
		payload = n.JobCancelled
	case n.ApplicationDecision != nil:
		payload = n.ApplicationDecision
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO notifications (id, recipient_user_id, type, payload, created_at)
        VALUES ($1,$2,$3,$4,NOW())
    `, n.ID, n.RecipientUserID, n.Type, body)
	return err
}
