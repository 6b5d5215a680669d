package models

import (
	"time"
)

// Location stores the coordinates a report was filed from.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Latitude  float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Location) TableName() string {
	return "locations"
}
