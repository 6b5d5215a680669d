package models

import (
	"time"
)

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Date      time.Time `gorm:"not null" json:"date"`
	Type      string    `gorm:"size:20;not null;index" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}
