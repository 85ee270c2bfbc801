package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/entity"
)

func TestNotifyRecordsAndPushes(t *testing.T) {
	store := new(mockNotificationStore)
	users := new(mockUserStore)
	pusher := new(mockPusher)
	uc := NewNotificationUsecase(store, users, pusher, newTestLogger())

	recipient := &entity.User{PushToken: "ExponentPushToken[abc]"}
	recipient.ID = "client-1"
	notification := &entity.Notification{
		ClientID: "client-1", Type: "offer_received",
		Title: "New offer", Message: "You received an offer",
		RelatedIDs: entity.StringList{"chat-1"},
	}

	store.On("Save", mock.Anything, notification).Return(nil)
	users.On("FindByID", mock.Anything, "client-1").Return(recipient, nil)
	pusher.On("Push", mock.Anything, "ExponentPushToken[abc]", "New offer", "You received an offer",
		map[string]string{"type": "offer_received", "relatedId": "chat-1"}).Return(nil)

	err := uc.Notify(context.Background(), notification, "client-1")

	require.NoError(t, err)
	pusher.AssertExpectations(t)
}

func TestNotifyPushFailureIsSwallowed(t *testing.T) {
	store := new(mockNotificationStore)
	users := new(mockUserStore)
	pusher := new(mockPusher)
	uc := NewNotificationUsecase(store, users, pusher, newTestLogger())

	recipient := &entity.User{PushToken: "token"}
	recipient.ID = "client-1"
	notification := &entity.Notification{ClientID: "client-1", Type: "chat_request"}

	store.On("Save", mock.Anything, notification).Return(nil)
	users.On("FindByID", mock.Anything, "client-1").Return(recipient, nil)
	pusher.On("Push", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	assert.NoError(t, uc.Notify(context.Background(), notification, "client-1"))
}

func TestNotifySkipsPushWithoutToken(t *testing.T) {
	store := new(mockNotificationStore)
	users := new(mockUserStore)
	pusher := new(mockPusher)
	uc := NewNotificationUsecase(store, users, pusher, newTestLogger())

	notification := &entity.Notification{ClientID: "client-1", Type: "chat_request"}

	store.On("Save", mock.Anything, notification).Return(nil)
	users.On("FindByID", mock.Anything, "client-1").
		Return(nil, apperr.NotFoundf("user %s", "client-1"))

	require.NoError(t, uc.Notify(context.Background(), notification, "client-1"))
	pusher.AssertNotCalled(t, "Push", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
