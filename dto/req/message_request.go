package req

import "gigwork-chat-app/enum"

type SendMessageRequest struct {
	ChatID      string           `json:"chatId" validate:"required"`
	Content     string           `json:"messageContent" validate:"required"`
	MessageType enum.MessageType `json:"messageType,omitempty"`
}

type FetchMessagesRequest struct {
	ChatID string `json:"chatId" validate:"required"`
	Cursor string `json:"cursor,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type MarkSeenRequest struct {
	ChatID string `json:"chatId" validate:"required"`
}

type MarkReadRequest struct {
	ChatID     string   `json:"chatId" validate:"required"`
	MessageIDs []string `json:"messageIds" validate:"required,min=1"`
}

type DeleteMessageRequest struct {
	MessageID    string `json:"messageId" validate:"required"`
	ChatID       string `json:"chatId" validate:"required"`
	DeletionType string `json:"deletionType" validate:"required,oneof=forMe forEveryone"`
}
