package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigwork-chat-app/enum"
)

type Chat struct {
	BaseEntity
	Title         string           `json:"title" gorm:"type:varchar(100)"`
	Status        enum.ChatStatus  `json:"status" gorm:"type:varchar(10);default:'pending'"`
	JobID         string           `json:"jobId" gorm:"type:varchar(255);index"`
	Offer         *float64         `json:"offer,omitempty" gorm:"type:numeric(12,2)"`
	OfferStatus   enum.OfferStatus `json:"offerStatus" gorm:"type:varchar(10);default:'none'"`
	LastMessageAt time.Time        `json:"lastMessageAt"`

	Participants []Participant `json:"participants" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	Messages     []Message     `json:"messages" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

// Participant is one side's membership record in a chat. Exactly one of
// UserID (client side) and JobSeekerID (job-seeker side) is set; both hold
// the underlying user ID.
type Participant struct {
	ID                 string  `json:"id" gorm:"primaryKey;type:varchar(255)"`
	ChatID             string  `json:"chatId" gorm:"type:varchar(255);index:idx_participant_chat"`
	UserID             *string `json:"userId,omitempty" gorm:"type:varchar(255);index"`
	JobSeekerID        *string `json:"jobSeekerId,omitempty" gorm:"type:varchar(255);index"`
	DeletedByClient    bool    `json:"deletedByClient" gorm:"default:false"`
	DeletedByJobSeeker bool    `json:"deletedByJobSeeker" gorm:"default:false"`

	Chat Chat `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Holds reports whether the participant row belongs to the given user,
// regardless of which side it is on.
func (p *Participant) Holds(userID string) bool {
	if p.UserID != nil && *p.UserID == userID {
		return true
	}
	return p.JobSeekerID != nil && *p.JobSeekerID == userID
}

func (p *Participant) IsClientSide() bool    { return p.UserID != nil }
func (p *Participant) IsJobSeekerSide() bool { return p.JobSeekerID != nil }
