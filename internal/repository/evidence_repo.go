package repository

import (
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

type EvidenceRepository struct {
	db *gorm.DB
}

func NewEvidenceRepository(db *gorm.DB) *EvidenceRepository {
	return &EvidenceRepository{db: db}
}

func (r *EvidenceRepository) Create(e *models.Evidence) error {
	return r.db.Create(e).Error
}

func (r *EvidenceRepository) GetByID(id uint) (*models.Evidence, error) {
	var e models.Evidence
	err := r.db.Preload("User").Preload("Report").First(&e, id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EvidenceRepository) List(reportID uint, page, limit int) ([]models.Evidence, int64, error) {
	q := r.db.Model(&models.Evidence{})
	if reportID != 0 {
		q = q.Where("report_id = ?", reportID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var evidences []models.Evidence
	err := q.Preload("User").Preload("Report").
		Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).
		Find(&evidences).Error
	return evidences, total, err
}

func (r *EvidenceRepository) ListByReport(reportID uint) ([]models.Evidence, error) {
	var evidences []models.Evidence
	err := r.db.Where("report_id = ?", reportID).Find(&evidences).Error
	return evidences, err
}

func (r *EvidenceRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Evidence{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EvidenceRepository) DeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&models.Evidence{})
	return res.RowsAffected, res.Error
}
