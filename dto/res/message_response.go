package res

import (
	"time"

	"gigwork-chat-app/enum"
)

// MessageView is one message rendered from the viewer's side: content a
// deleted side can no longer see collapses into a placeholder.
type MessageView struct {
	ID       string           `json:"id"`
	ChatID   string           `json:"chatId"`
	SenderID string           `json:"senderId"`
	Content  string           `json:"content"`
	Type     enum.MessageType `json:"type"`
	SentAt   time.Time        `json:"sentAt"`
	IsSeen   bool             `json:"isSeen"`
	Deleted  bool             `json:"deleted"`
}

type MessagesPage struct {
	ChatID   string        `json:"chatId"`
	Messages []MessageView `json:"messages"`
}

type UploadResult struct {
	ChatID    string `json:"chatId"`
	MessageID string `json:"messageId"`
	URL       string `json:"url"`
}
