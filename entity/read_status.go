package entity

import "time"

// ReadStatus exists for every (message, participant) pair except the sender's
// own row; ReadAt stays nil until that participant acknowledges the message.
type ReadStatus struct {
	BaseEntity
	MessageID     string     `json:"messageId" gorm:"type:varchar(255);uniqueIndex:idx_message_participant"`
	ParticipantID string     `json:"participantId" gorm:"type:varchar(255);uniqueIndex:idx_message_participant"`
	ReadAt        *time.Time `json:"readAt"`
}
