package models

import (
	"time"

	"crimegpt/internal/domain"
)

type User struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	FullName                string     `gorm:"size:50;not null" json:"fullname"`
	Email                   string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Gender                  string     `gorm:"size:10;not null" json:"gender"` // male | female | other
	Mobile                  string     `gorm:"size:13;not null" json:"mobile"`
	PasswordHash            string     `gorm:"size:255;not null" json:"-"`
	NICNumber               string     `gorm:"uniqueIndex;size:15;not null" json:"nic_number"`
	NICImageURL             string     `gorm:"size:512;not null" json:"nic_image_url"`
	ProfileImageURL         string     `gorm:"size:512" json:"profile_image_url"`
	Address                 string     `gorm:"size:255;not null" json:"address"`
	Role                    string     `gorm:"size:10;not null;index;default:'user'" json:"role"` // user | admin
	IsEmailVerified         bool       `gorm:"default:false" json:"is_email_verified"`
	EmailVerificationToken  string     `gorm:"size:128" json:"-"`
	EmailVerificationExpiry *time.Time `json:"-"`
	RefreshToken            string     `gorm:"size:512" json:"-"`
	FCMToken                string     `gorm:"size:512" json:"-"` // latest-wins device push token
	ResetPasswordToken      string     `gorm:"size:512" json:"-"`
	ResetPasswordExpiry     *time.Time `json:"-"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
