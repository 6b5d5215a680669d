package repository

import (
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(l *models.Location) error {
	return r.db.Create(l).Error
}

func (r *LocationRepository) GetByID(id uint) (*models.Location, error) {
	var l models.Location
	err := r.db.First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}
