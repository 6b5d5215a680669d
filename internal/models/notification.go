package models

import (
	"time"
)

// Notification is the durable record of one delivered-or-attempted message.
// The row is written before any push is attempted; push delivery is
// best-effort and its outcome is never reflected back onto the row.
//
// SeverityLevel documents {Low, Moderate, High, Critical} but is stored as a
// free string, so classifier tiers ("Medium") pass through verbatim. The JSON
// field name "receipientType" carries over from the original API contract.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	ReportID      *uint     `gorm:"index" json:"report_id"`
	CaseNumber    string    `gorm:"size:64;not null" json:"caseNumber"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Body          string    `gorm:"type:text;not null" json:"body"`
	ImageURL      string    `gorm:"size:512" json:"imageUrl"`
	SeverityLevel string    `gorm:"size:20;default:'Low'" json:"severityLevel"`
	IsRead        bool      `gorm:"default:false" json:"isRead"`
	RecipientType string    `gorm:"size:10;default:'user'" json:"receipientType"` // user | admin | both
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
