package models

import (
	"time"
)

// Report is one citizen-submitted or admin-entered incident record.
// The complainant fields are denormalized from the owning user at creation
// time so the report stays intact even if the account later changes.
type Report struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;index" json:"user_id"`
	ComplainantName     string    `gorm:"size:50;not null" json:"complainant_name"`
	ComplainantEmail    string    `gorm:"size:255;not null" json:"complainant_email"`
	NIC                 string    `gorm:"size:15;not null;index" json:"nic"`
	CaseNumber          string    `gorm:"uniqueIndex;size:64;not null" json:"caseNumber"`
	ReportPdfURL        string    `gorm:"size:512;not null" json:"reportPdfUrl"`
	IncidentType        string    `gorm:"size:100;not null;index" json:"incident_type"` // normalized lowercase
	Location            string    `gorm:"size:255;not null" json:"location"`
	UserLocationID      *uint     `gorm:"index" json:"user_location_id"`
	IncidentDescription string    `gorm:"type:text;not null" json:"incident_description"`
	ReportStatus        string    `gorm:"size:20;not null;index" json:"reportStatus"` // pending | investigating | rejected | resolved | closed
	ReportedDate        time.Time `gorm:"not null" json:"reportedDate"`
	ReportedTime        string    `gorm:"size:20;not null" json:"reportedTime"`
	SignatureImageURL   string    `gorm:"size:512;not null" json:"signatureImageUrl"`
	PoliceStationName   string    `gorm:"size:100;not null" json:"policeStationName"`
	DeletedByUser       bool      `gorm:"default:false;index" json:"deletedByUser"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	User         User          `gorm:"foreignKey:UserID" json:"-"`
	UserLocation *Location     `gorm:"foreignKey:UserLocationID" json:"userLocation,omitempty"`
	Evidences    []Evidence    `gorm:"foreignKey:ReportID" json:"evidences,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
