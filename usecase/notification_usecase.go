package usecase

import (
	"context"

	"gigwork-chat-app/entity"
)

type NotificationUsecase interface {
	// Notify records the notification durably and pushes to the recipient's
	// device when a token is on file. Push failures are logged, never
	// returned.
	Notify(ctx context.Context, notification *entity.Notification, recipientUserID string) error
}
