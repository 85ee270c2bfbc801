package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigwork-chat-app/enum"
)

type Message struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(255)"`
	// Seq breaks sentAt ties so ordering stays total within a chat.
	Seq               int64            `json:"-" gorm:"autoIncrement;uniqueIndex"`
	ChatID            string           `json:"chatId" gorm:"type:varchar(255);index"`
	SenderID          string           `json:"senderId" gorm:"type:varchar(255)"`
	Content           string           `json:"content" gorm:"type:text"`
	Type              enum.MessageType `json:"type" gorm:"type:varchar(10);default:'text'"`
	SentAt            time.Time        `json:"sentAt" gorm:"index"`
	DeletedBySender   bool             `json:"deletedBySender" gorm:"default:false"`
	DeletedByReceiver bool             `json:"deletedByReceiver" gorm:"default:false"`

	Chat   Chat         `json:"-" gorm:"foreignKey:ChatID;references:ID"`
	ReadBy []ReadStatus `json:"readBy,omitempty" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now()
	}
	return nil
}

// DeletedForAll is true once both sides flagged the message; it then renders
// as "This message was deleted" for everyone.
func (m *Message) DeletedForAll() bool {
	return m.DeletedBySender && m.DeletedByReceiver
}

// VisibleTo reports whether viewerID still sees the original content.
func (m *Message) VisibleTo(viewerID string) bool {
	if m.DeletedForAll() {
		return false
	}
	if m.SenderID == viewerID {
		return !m.DeletedBySender
	}
	return !m.DeletedByReceiver
}
