package usecase

import (
	"context"

	"github.com/sirupsen/logrus"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/entity"
)

type userUsecase struct {
	users UserStore
	log   *logrus.Logger
}

func NewUserUsecase(users UserStore, log *logrus.Logger) UserUsecase {
	return &userUsecase{users: users, log: log}
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.users.FindByID(ctx, userID)
}

func (uc *userUsecase) SetPushToken(ctx context.Context, userID, token string) error {
	return uc.users.UpdatePushToken(ctx, userID, token)
}

func (uc *userUsecase) OnlineProfiles(ctx context.Context, userIDs []string) []dto.OnlineUser {
	profiles := make([]dto.OnlineUser, 0, len(userIDs))
	for _, id := range userIDs {
		user, err := uc.users.FindByID(ctx, id)
		if err != nil {
			uc.log.WithError(err).WithField("userId", id).Debug("skipping unknown online user")
			continue
		}
		profiles = append(profiles, dto.OnlineUser{
			UserID:       user.ID,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			ProfileImage: user.ProfileImage,
		})
	}
	return profiles
}
