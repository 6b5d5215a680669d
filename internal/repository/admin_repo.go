package repository

import (
	"crimegpt/internal/domain"
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

// AdminRepository serves the dashboard aggregation queries.
type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

type CountBucket struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type DashboardStats struct {
	TotalUsers      int64         `json:"totalUsers"`
	TotalReports    int64         `json:"totalReports"`
	PendingReports  int64         `json:"pendingReports"`
	ResolvedReports int64         `json:"resolvedReports"`
	ReportsByType   []CountBucket `json:"reportsByType"`
	ReportsByStatus []CountBucket `json:"reportsByStatus"`
	UsersByGender   []CountBucket `json:"usersByGender"`
	TotalEvidences  int64         `json:"totalEvidences"`
	TotalFeedbacks  int64         `json:"totalFeedbacks"`

	TotalNotifications int64 `json:"totalNotifications"`
}

type ReportLocation struct {
	ReportID     uint    `json:"reportId"`
	CaseNumber   string  `json:"caseNumber"`
	IncidentType string  `json:"incidentType"`
	ReportStatus string  `json:"reportStatus"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// DashboardStats collects the admin dashboard counters in one pass. Admin
// views include reports that users soft-deleted.
func (r *AdminRepository) DashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if err := r.db.Model(&models.User{}).Where("role <> ?", domain.RoleAdmin).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Report{}).Count(&stats.TotalReports).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Report{}).Where("report_status = ?", domain.StatusPending).Count(&stats.PendingReports).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Report{}).Where("report_status = ?", domain.StatusResolved).Count(&stats.ResolvedReports).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Evidence{}).Count(&stats.TotalEvidences).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Feedback{}).Count(&stats.TotalFeedbacks).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Notification{}).Count(&stats.TotalNotifications).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&models.Report{}).
		Select("incident_type AS `key`, COUNT(*) AS count").
		Group("incident_type").
		Scan(&stats.ReportsByType).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Report{}).
		Select("report_status AS `key`, COUNT(*) AS count").
		Group("report_status").
		Scan(&stats.ReportsByStatus).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.User{}).
		Where("role <> ?", domain.RoleAdmin).
		Select("gender AS `key`, COUNT(*) AS count").
		Group("gender").
		Scan(&stats.UsersByGender).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ReportLocations returns the coordinates of every report that carries a
// structured location, for the dashboard map view.
func (r *AdminRepository) ReportLocations() ([]ReportLocation, error) {
	var locations []ReportLocation
	err := r.db.Model(&models.Report{}).
		Select("reports.id AS report_id, reports.case_number, reports.incident_type, reports.report_status, locations.latitude, locations.longitude").
		Joins("JOIN locations ON locations.id = reports.user_location_id").
		Scan(&locations).Error
	return locations, err
}
