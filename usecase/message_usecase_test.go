package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gigwork-chat-app/apperr"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

func TestSendMessageSeedsUnreadForRecipientsOnly(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

	chats.On("FindParticipant", mock.Anything, "chat-1", "client-1").
		Return(clientParticipant("chat-1", "client-1"), nil)
	chats.On("FindParticipants", mock.Anything, "chat-1").
		Return([]entity.Participant{
			*clientParticipant("chat-1", "client-1"),
			*seekerParticipant("chat-1", "seeker-1"),
		}, nil)
	messages.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			m := args.Get(1).(*entity.Message)
			m.ID = "m-1"
			m.SentAt = time.Now()
		}).
		Return(nil)
	messages.On("CreateUnread", mock.Anything, "m-1", []string{"p-seeker"}).Return(nil)
	chats.On("TouchLastMessage", mock.Anything, "chat-1", mock.Anything).Return(nil)

	result, err := uc.SendMessage(context.Background(), "client-1", req.SendMessageRequest{
		ChatID: "chat-1", Content: "hello",
	})

	require.NoError(t, err)
	assert.Equal(t, "m-1", result.Message.ID)
	assert.Equal(t, enum.MessageTypeText, result.Message.Type)
	assert.Equal(t, []string{"seeker-1"}, result.RecipientUserIDs)
	messages.AssertExpectations(t)
}

func TestSendMessageRequiresMembership(t *testing.T) {
	chats := new(mockChatStore)
	uc := NewMessageUsecase(chats, new(mockMessageStore), new(mockBlobStore), newTestLogger())

	chats.On("FindParticipant", mock.Anything, "chat-1", "stranger").
		Return(nil, apperr.Unauthorizedf("user %s is not a participant of chat %s", "stranger", "chat-1"))

	_, err := uc.SendMessage(context.Background(), "stranger", req.SendMessageRequest{
		ChatID: "chat-1", Content: "hi",
	})

	assert.True(t, apperr.IsUnauthorized(err))
}

func TestSendMediaStoresBlobBeforeMessage(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	blobs := new(mockBlobStore)
	uc := NewMessageUsecase(chats, messages, blobs, newTestLogger())

	data := []byte{0xFF, 0xD8}
	chats.On("FindParticipant", mock.Anything, "chat-1", "seeker-1").
		Return(seekerParticipant("chat-1", "seeker-1"), nil)
	chats.On("FindParticipants", mock.Anything, "chat-1").
		Return([]entity.Participant{
			*clientParticipant("chat-1", "client-1"),
			*seekerParticipant("chat-1", "seeker-1"),
		}, nil)
	blobs.On("Write", mock.Anything, "chat-1", "pic.jpg", data).
		Return("/assets/messages_files/chat-1/pic.jpg", nil)
	messages.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*entity.Message).ID = "m-2" }).
		Return(nil)
	messages.On("CreateUnread", mock.Anything, "m-2", []string{"p-client"}).Return(nil)
	chats.On("TouchLastMessage", mock.Anything, "chat-1", mock.Anything).Return(nil)

	result, err := uc.SendMedia(context.Background(), "seeker-1", "chat-1", "pic.jpg", data, enum.MessageTypeImage)

	require.NoError(t, err)
	assert.Equal(t, "/assets/messages_files/chat-1/pic.jpg", result.Message.Content)
	assert.Equal(t, enum.MessageTypeImage, result.Message.Type)
}

func TestSendMediaBlobFailureSkipsMessage(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	blobs := new(mockBlobStore)
	uc := NewMessageUsecase(chats, messages, blobs, newTestLogger())

	chats.On("FindParticipant", mock.Anything, "chat-1", "seeker-1").
		Return(seekerParticipant("chat-1", "seeker-1"), nil)
	blobs.On("Write", mock.Anything, "chat-1", "pic.jpg", mock.Anything).
		Return("", assert.AnError)

	_, err := uc.SendMedia(context.Background(), "seeker-1", "chat-1", "pic.jpg", []byte{1}, enum.MessageTypeImage)

	assert.Error(t, err)
	messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMarkSeenReportsLatestMessage(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

	latest := &entity.Message{ID: "m-9", ChatID: "chat-1"}

	chats.On("FindParticipant", mock.Anything, "chat-1", "seeker-1").
		Return(seekerParticipant("chat-1", "seeker-1"), nil)
	messages.On("MarkChatSeen", mock.Anything, "chat-1", "p-seeker", "seeker-1", mock.Anything).
		Return(int64(3), nil)
	messages.On("LatestInChat", mock.Anything, "chat-1").Return(latest, nil)

	result, err := uc.MarkSeen(context.Background(), "seeker-1", req.MarkSeenRequest{ChatID: "chat-1"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Updated)
	assert.Equal(t, "m-9", result.LatestMessageID)
}

func TestMarkSeenEmptyChat(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

	chats.On("FindParticipant", mock.Anything, "chat-1", "seeker-1").
		Return(seekerParticipant("chat-1", "seeker-1"), nil)
	messages.On("MarkChatSeen", mock.Anything, "chat-1", "p-seeker", "seeker-1", mock.Anything).
		Return(int64(0), nil)
	messages.On("LatestInChat", mock.Anything, "chat-1").
		Return(nil, apperr.NotFoundf("no messages in chat %s", "chat-1"))

	result, err := uc.MarkSeen(context.Background(), "seeker-1", req.MarkSeenRequest{ChatID: "chat-1"})

	require.NoError(t, err)
	assert.Empty(t, result.LatestMessageID)
	assert.Zero(t, result.Updated)
}

func TestMarkReadScopesAcknowledgmentToChatAndReader(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

	chats.On("FindParticipant", mock.Anything, "chat-1", "client-1").
		Return(clientParticipant("chat-1", "client-1"), nil)
	// The store receives the chat and the reader identity so it can discard
	// IDs from other chats and messages the reader authored.
	messages.On("MarkRead", mock.Anything, "chat-1", []string{"m-1", "m-2"}, "p-client", "client-1", mock.Anything).
		Return(nil)

	err := uc.MarkRead(context.Background(), "client-1", req.MarkReadRequest{
		ChatID: "chat-1", MessageIDs: []string{"m-1", "m-2"},
	})

	require.NoError(t, err)
	messages.AssertExpectations(t)
}

func TestDeleteMessageForMeFlagsCallerSide(t *testing.T) {
	truthy := true

	cases := []struct {
		name       string
		caller     string
		bySender   *bool
		byReceiver *bool
	}{
		{name: "sender deletes own message", caller: "client-1", bySender: &truthy},
		{name: "receiver hides message", caller: "seeker-1", byReceiver: &truthy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chats := new(mockChatStore)
			messages := new(mockMessageStore)
			uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

			stored := &entity.Message{ID: "m-1", ChatID: "chat-1", SenderID: "client-1"}
			messages.On("FindByID", mock.Anything, "m-1").Return(stored, nil)
			chats.On("FindParticipant", mock.Anything, "chat-1", tc.caller).
				Return(&entity.Participant{ID: "p-x", ChatID: "chat-1"}, nil)
			messages.On("SetDeletionFlags", mock.Anything, "m-1", tc.bySender, tc.byReceiver).Return(nil)

			result, err := uc.DeleteMessage(context.Background(), tc.caller, req.DeleteMessageRequest{
				MessageID: "m-1", ChatID: "chat-1", DeletionType: "forMe",
			})

			require.NoError(t, err)
			assert.Equal(t, tc.bySender != nil, result.DeletedBySender)
			assert.Equal(t, tc.byReceiver != nil, result.DeletedByReceiver)
			messages.AssertExpectations(t)
		})
	}
}

func TestDeleteMessageForEveryoneFlagsBothSides(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

	truthy := true
	stored := &entity.Message{ID: "m-1", ChatID: "chat-1", SenderID: "client-1"}
	messages.On("FindByID", mock.Anything, "m-1").Return(stored, nil)
	chats.On("FindParticipant", mock.Anything, "chat-1", "seeker-1").
		Return(seekerParticipant("chat-1", "seeker-1"), nil)
	messages.On("SetDeletionFlags", mock.Anything, "m-1", &truthy, &truthy).Return(nil)

	result, err := uc.DeleteMessage(context.Background(), "seeker-1", req.DeleteMessageRequest{
		MessageID: "m-1", ChatID: "chat-1", DeletionType: "forEveryone",
	})

	require.NoError(t, err)
	assert.True(t, result.DeletedForAll())
}

func TestDeleteMessageWrongChatRejected(t *testing.T) {
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(new(mockChatStore), messages, new(mockBlobStore), newTestLogger())

	stored := &entity.Message{ID: "m-1", ChatID: "chat-other", SenderID: "client-1"}
	messages.On("FindByID", mock.Anything, "m-1").Return(stored, nil)

	_, err := uc.DeleteMessage(context.Background(), "client-1", req.DeleteMessageRequest{
		MessageID: "m-1", ChatID: "chat-1", DeletionType: "forMe",
	})

	assert.True(t, apperr.IsInvalidState(err))
}

func TestListMessagesMasksDeletedContent(t *testing.T) {
	chats := new(mockChatStore)
	messages := new(mockMessageStore)
	uc := NewMessageUsecase(chats, messages, new(mockBlobStore), newTestLogger())

	now := time.Now()
	readAt := now
	page := []entity.Message{
		{ID: "m-1", ChatID: "chat-1", SenderID: "seeker-1", Content: "visible", Type: enum.MessageTypeText, SentAt: now},
		{ID: "m-2", ChatID: "chat-1", SenderID: "seeker-1", Content: "secret", Type: enum.MessageTypeText, SentAt: now,
			DeletedBySender: true, DeletedByReceiver: true},
	}

	chats.On("FindParticipant", mock.Anything, "chat-1", "client-1").
		Return(clientParticipant("chat-1", "client-1"), nil)
	messages.On("ListSince", mock.Anything, "chat-1", "", 50).Return(page, nil)
	messages.On("FindReadStatuses", mock.Anything, []string{"m-1", "m-2"}).
		Return([]entity.ReadStatus{
			{MessageID: "m-1", ParticipantID: "p-client", ReadAt: &readAt},
			{MessageID: "m-2", ParticipantID: "p-client"},
		}, nil)

	result, err := uc.ListMessages(context.Background(), "client-1", req.FetchMessagesRequest{
		ChatID: "chat-1", Limit: 50,
	})

	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "visible", result.Messages[0].Content)
	assert.True(t, result.Messages[0].IsSeen)
	assert.Equal(t, "This message was deleted", result.Messages[1].Content)
	assert.True(t, result.Messages[1].Deleted)
	assert.False(t, result.Messages[1].IsSeen)
}
