package repository

import (
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByUser(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *NotificationRepository) ListAll() ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *NotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	err := r.db.First(&n, id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// GetOwnedAndMarkRead fetches a user's notification and flips its read flag.
func (r *NotificationRepository) GetOwnedAndMarkRead(userID, id uint) (*models.Notification, error) {
	var n models.Notification
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if err != nil {
		return nil, err
	}
	if !n.IsRead {
		n.IsRead = true
		if err := r.db.Model(&n).Update("is_read", true).Error; err != nil {
			return nil, err
		}
	}
	return &n, nil
}

func (r *NotificationRepository) MarkRead(id uint) error {
	res := r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteOwned(userID, id uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAllOwned(userID uint) (int64, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Notification{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAll() (int64, error) {
	res := r.db.Where("1 = 1").Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).Count(&n).Error
	return n, err
}
