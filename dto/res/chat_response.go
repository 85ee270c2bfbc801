package res

import (
	"time"

	"gigwork-chat-app/enum"
)

// ChatSummary is one row of a user's chat list, rendered from the viewer's
// side: soft-deleted messages collapse into placeholder previews.
type ChatSummary struct {
	ID                 string           `json:"id"`
	CreatedAt          time.Time        `json:"createdAt"`
	ParticipantName    string           `json:"participantName"`
	ProfileImage       string           `json:"profileImage,omitempty"`
	LastMessage        string           `json:"lastMessage"`
	LastMessageTime    time.Time        `json:"lastMessageTime"`
	ChatTitle          string           `json:"chatTitle"`
	ChatStatus         enum.ChatStatus  `json:"chatStatus"`
	JobID              string           `json:"jobId"`
	Offer              *float64         `json:"offer,omitempty"`
	OfferStatus        enum.OfferStatus `json:"offerStatus"`
	SenderID           string           `json:"senderId,omitempty"`
	OtherParticipantID string           `json:"otherParticipantId,omitempty"`
}

type ChatCreated struct {
	ChatID       string          `json:"chatId"`
	ChatTitle    string          `json:"chatTitle"`
	ChatStatus   enum.ChatStatus `json:"chatStatus"`
	JobID        string          `json:"jobId"`
	Participants interface{}     `json:"participants"`
}

type ChatStatusView struct {
	ChatID     string          `json:"chatId"`
	ChatStatus enum.ChatStatus `json:"chatStatus"`
}

type OfferState struct {
	Offer       *float64         `json:"offer"`
	OfferStatus enum.OfferStatus `json:"offerStatus"`
}
