package repository

import (
	"crimegpt/internal/domain"
	"crimegpt/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByNIC(nic string) (*models.User, error) {
	var u models.User
	err := r.db.Where("nic_number = ?", nic).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByVerificationToken(hashedToken string) (*models.User, error) {
	var u models.User
	err := r.db.Where("email_verification_token = ?", hashedToken).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// DeleteAllNonAdmins removes every citizen account and reports how many rows
// went away.
func (r *UserRepository) DeleteAllNonAdmins() (int64, error) {
	res := r.db.Where("role <> ?", domain.RoleAdmin).Delete(&models.User{})
	return res.RowsAffected, res.Error
}

// List returns users with optional NIC search, sorting and pagination.
func (r *UserRepository) List(nicSearch, sortBy, sortType string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if nicSearch != "" {
		q = q.Where("nic_number LIKE ?", "%"+nicSearch+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	order := sortBy
	if order == "" {
		order = "full_name"
	}
	if sortType == "desc" {
		order += " DESC"
	}
	var users []models.User
	err := q.Order(order).Offset((page - 1) * limit).Limit(limit).Find(&users).Error
	return users, total, err
}

// AdminFCMTokens fetches the push tokens of every admin account that has one.
// This is a live query on demand, never cached.
func (r *UserRepository) AdminFCMTokens() ([]string, error) {
	var tokens []string
	err := r.db.Model(&models.User{}).
		Where("role = ? AND fcm_token <> ''", domain.RoleAdmin).
		Pluck("fcm_token", &tokens).Error
	return tokens, err
}
