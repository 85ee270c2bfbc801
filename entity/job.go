package entity

import (
	"time"

	"gigwork-chat-app/enum"
)

type Job struct {
	BaseEntity
	ClientID       string         `json:"clientId" gorm:"type:varchar(255);index"`
	Title          string         `json:"title" gorm:"type:varchar(100)"`
	Budget         float64        `json:"budget" gorm:"type:numeric(12,2)"`
	Status         enum.JobStatus `json:"status" gorm:"type:varchar(10);default:'open'"`
	JobSeekerID    *string        `json:"jobSeekerId,omitempty" gorm:"type:varchar(255)"`
	Offer          *float64       `json:"offer,omitempty" gorm:"type:numeric(12,2)"`
	ApplicantCount int            `json:"applicantCount" gorm:"default:0"`
	AcceptedAt     *time.Time     `json:"acceptedAt,omitempty"`
}
