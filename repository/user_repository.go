package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "customer not found")
		}
		return nil, err
	}
	return &u, nil
}

// ---------------- Addresses ----------------

func (r *UserRepository) CreateAddress(a *entity.Address) error {
	return r.DB.Create(a).Error
}

func (r *UserRepository) ListAddresses(userID uint) ([]entity.Address, error) {
	var out []entity.Address
	err := r.DB.Where("user_id = ?", userID).Order("id").Find(&out).Error
	return out, err
}

// GetAddressForUser enforces ownership: an address id belonging to another
// customer reads as not found.
func (r *UserRepository) GetAddressForUser(userID, addressID uint) (*entity.Address, error) {
	var a entity.Address
	err := r.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "address not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
