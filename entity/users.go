package entity

import "gigwork-chat-app/enum"

type User struct {
	BaseEntity
	FirstName    string    `json:"firstName" gorm:"type:varchar(100)"`
	LastName     string    `json:"lastName" gorm:"type:varchar(100)"`
	Role         enum.Role `json:"role" gorm:"type:varchar(20)"`
	ProfileImage string    `json:"profileImage,omitempty" gorm:"type:text"`
	PushToken    string    `json:"-" gorm:"type:varchar(255)"`

	Messages []Message `json:"-" gorm:"foreignKey:SenderID"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
