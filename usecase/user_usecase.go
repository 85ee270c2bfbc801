package usecase

import (
	"context"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/entity"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*entity.User, error)
	SetPushToken(ctx context.Context, userID, token string) error
	// OnlineProfiles resolves presence IDs into display profiles; unknown IDs
	// are skipped.
	OnlineProfiles(ctx context.Context, userIDs []string) []dto.OnlineUser
}
