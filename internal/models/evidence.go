package models

import (
	"time"
)

// Evidence is one uploaded artifact attached to a report. The case number is
// denormalized so evidence can be looked up without joining the report.
// Deleting evidence does not edit the parent report, and hard-deleting a
// report does not remove its evidence rows.
type Evidence struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Type            string    `gorm:"size:20;not null" json:"type"` // image | video | audio | document | raw
	EvidenceFileURL string    `gorm:"size:512;not null" json:"evidencefileUrl"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	ReportID        uint      `gorm:"not null;index" json:"report_id"`
	CaseNumber      string    `gorm:"size:64;not null;index" json:"caseNumber"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Report Report `gorm:"foreignKey:ReportID" json:"-"`
}

func (Evidence) TableName() string {
	return "evidences"
}
