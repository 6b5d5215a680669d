package repository

import (
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) Save(report *models.Report) error {
	return r.db.Save(report).Error
}

// GetOwned returns a report scoped to its owner. Soft-deleted reports are
// excluded, so a second soft delete of the same report resolves to not-found.
func (r *ReportRepository) GetOwned(userID, id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("user_id = ? AND id = ? AND deleted_by_user = ?", userID, id, false).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListOwned returns the owner's non-deleted reports with pagination and an
// optional case-number filter.
func (r *ReportRepository) ListOwned(userID uint, caseNumber string, page, limit int) ([]models.Report, int64, error) {
	q := r.db.Model(&models.Report{}).Where("user_id = ? AND deleted_by_user = ?", userID, false)
	if caseNumber != "" {
		q = q.Where("case_number = ?", caseNumber)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reports []models.Report
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&reports).Error
	return reports, total, err
}

// ListAllOwned returns every non-deleted report of the owner, unpaginated.
// Bulk operations use this so no report slips past a page boundary.
func (r *ReportRepository) ListAllOwned(userID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Where("user_id = ? AND deleted_by_user = ?", userID, false).Find(&reports).Error
	return reports, err
}

// GetOwnedByCaseNumber resolves an owner's non-deleted report by case number.
func (r *ReportRepository) GetOwnedByCaseNumber(userID uint, caseNumber string) (*models.Report, error) {
	var report models.Report
	err := r.db.Where("user_id = ? AND case_number = ? AND deleted_by_user = ?", userID, caseNumber, false).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// SoftDelete flips the owner-deletion flag on one owned, not yet deleted
// report. Returns gorm.ErrRecordNotFound when nothing matched.
func (r *ReportRepository) SoftDelete(userID, id uint) error {
	res := r.db.Model(&models.Report{}).
		Where("user_id = ? AND id = ? AND deleted_by_user = ?", userID, id, false).
		Update("deleted_by_user", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteAllOwned flags every non-deleted report of the owner in one
// update.
func (r *ReportRepository) SoftDeleteAllOwned(userID uint) (int64, error) {
	res := r.db.Model(&models.Report{}).
		Where("user_id = ? AND deleted_by_user = ?", userID, false).
		Update("deleted_by_user", true)
	return res.RowsAffected, res.Error
}

// Admin queries see soft-deleted reports too.

func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) GetByIDWithUser(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.Preload("User").First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ListAll(caseNumber string) ([]models.Report, error) {
	q := r.db.Model(&models.Report{})
	if caseNumber != "" {
		q = q.Where("case_number = ?", caseNumber)
	}
	var reports []models.Report
	err := q.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

// HardDelete permanently removes a report. Evidence rows referencing it are
// left in place and keep their case number.
func (r *ReportRepository) HardDelete(id uint) error {
	res := r.db.Delete(&models.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReportRepository) HardDeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&models.Report{})
	return res.RowsAffected, res.Error
}

func (r *ReportRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&models.Report{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByOwner returns the owner's non-deleted report count, optionally
// filtered by status.
func (r *ReportRepository) CountByOwner(userID uint, status string) (int64, error) {
	q := r.db.Model(&models.Report{}).Where("user_id = ? AND deleted_by_user = ?", userID, false)
	if status != "" {
		q = q.Where("report_status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
