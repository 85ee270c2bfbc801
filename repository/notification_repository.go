package repository

import (
	"gorm.io/gorm"

	"gigwork-chat-app/entity"
)

type NotificationRepository struct {
	Repository[entity.Notification]
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{Repository[entity.Notification]{DB: db}}
}
