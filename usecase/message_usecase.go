package usecase

import (
	"context"

	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/entity"
	"gigwork-chat-app/enum"
)

// SendResult is a stored message plus the user IDs that should receive it.
type SendResult struct {
	Message          *entity.Message
	RecipientUserIDs []string
}

// SeenResult reports a mark-as-seen sweep: the newest message in the chat and
// how many unread markers were stamped.
type SeenResult struct {
	ChatID          string `json:"chatId"`
	LatestMessageID string `json:"latestMessageId,omitempty"`
	Updated         int64  `json:"updated"`
}

type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID string, payload req.SendMessageRequest) (*SendResult, error)
	// SendMedia stores the blob first so the message never references a
	// location that does not exist.
	SendMedia(ctx context.Context, senderID, chatID, name string, data []byte, kind enum.MessageType) (*SendResult, error)
	ListMessages(ctx context.Context, userID string, payload req.FetchMessagesRequest) (*res.MessagesPage, error)
	MarkSeen(ctx context.Context, userID string, payload req.MarkSeenRequest) (*SeenResult, error)
	MarkRead(ctx context.Context, userID string, payload req.MarkReadRequest) error
	DeleteMessage(ctx context.Context, userID string, payload req.DeleteMessageRequest) (*entity.Message, error)
}
