package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	}
	return errors.New("unsupported type for StringList")
}

type Notification struct {
	BaseEntity
	ClientID    string     `json:"clientId" gorm:"type:varchar(255);index"`
	JobSeekerID *string    `json:"jobSeekerId,omitempty" gorm:"type:varchar(255)"`
	Type        string     `json:"type" gorm:"type:varchar(30)"`
	Title       string     `json:"title" gorm:"type:varchar(100)"`
	Message     string     `json:"message" gorm:"type:text"`
	RelatedIDs  StringList `json:"relatedIds" gorm:"type:text"`
	IsRead      bool       `json:"isRead" gorm:"default:false"`
}
