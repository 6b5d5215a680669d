package repository

import (
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(f *models.Feedback) error {
	return r.db.Create(f).Error
}

func (r *FeedbackRepository) GetByID(id uint) (*models.Feedback, error) {
	var f models.Feedback
	err := r.db.First(&f, id).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepository) ListAll() ([]models.Feedback, error) {
	var list []models.Feedback
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *FeedbackRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FeedbackRepository) DeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&models.Feedback{})
	return res.RowsAffected, res.Error
}
