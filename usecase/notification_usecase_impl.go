package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"gigwork-chat-app/entity"
	"gigwork-chat-app/notifier"
)

type notificationUsecase struct {
	notifications NotificationStore
	users         UserStore
	pusher        notifier.Pusher
	log           *logrus.Logger
}

func NewNotificationUsecase(notifications NotificationStore, users UserStore, pusher notifier.Pusher, log *logrus.Logger) NotificationUsecase {
	return &notificationUsecase{notifications: notifications, users: users, pusher: pusher, log: log}
}

func (uc *notificationUsecase) Notify(ctx context.Context, notification *entity.Notification, recipientUserID string) error {
	if err := uc.notifications.Save(ctx, notification); err != nil {
		return err
	}

	user, err := uc.users.FindByID(ctx, recipientUserID)
	if err != nil || user.PushToken == "" {
		return nil
	}
	data := map[string]string{"type": notification.Type}
	if len(notification.RelatedIDs) > 0 {
		data["relatedId"] = notification.RelatedIDs[0]
	}
	if err := uc.pusher.Push(ctx, user.PushToken, notification.Title, notification.Message, data); err != nil {
		uc.log.WithError(err).WithField("userId", recipientUserID).Warn("push delivery failed")
	}
	return nil
}
