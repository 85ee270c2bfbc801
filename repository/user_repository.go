package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/entity"
)

type UserRepository struct {
	Repository[entity.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository[entity.User]{DB: db}}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("user %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePushToken(ctx context.Context, userID, token string) error {
	return r.DB.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("push_token", token).Error
}
