package dto

import (
	"time"

	"gigwork-chat-app/entity"
)

// BroadcastMessage is the receive_message payload: the stored message plus
// live delivery markers.
type BroadcastMessage struct {
	entity.Message
	IsDelivered bool `json:"isDelivered"`
	IsSeen      bool `json:"isSeen"`
}

// ChatUpdate refreshes a chat's list-view preview; it goes out system-wide,
// not just to the room.
type ChatUpdate struct {
	ID              string    `json:"id"`
	ParticipantName string    `json:"participantName"`
	ProfileImage    string    `json:"profileImage,omitempty"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	IsDelivered     bool      `json:"isDelivered"`
	IsSeen          bool      `json:"isSeen"`
}

type OnlineUser struct {
	UserID       string `json:"userId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// OfferNotice describes an offer transition to the room.
type OfferNotice struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	OfferAmount float64 `json:"offerAmount"`
	JobTitle    string  `json:"jobTitle"`
	ChatID      string  `json:"chatId"`
}
