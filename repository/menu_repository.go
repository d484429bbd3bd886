package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) Get(id uint) (*entity.Menu, error) {
	var m entity.Menu
	if err := r.DB.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "menu item not found")
		}
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) ListForRestaurant(restID uint) ([]entity.Menu, error) {
	var out []entity.Menu
	err := r.DB.Where("restaurant_id = ?", restID).Order("id").Find(&out).Error
	return out, err
}

// IsItemActiveInMenu reports whether the item still belongs to the
// restaurant's menu and is currently available. Checkout validation calls
// this per cart line.
func (r *MenuRepository) IsItemActiveInMenu(menuID, restID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Menu{}).
		Where("id = ? AND restaurant_id = ? AND is_available = ?", menuID, restID, true).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *MenuRepository) Create(m *entity.Menu) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) SetAvailability(menuID uint, available bool) error {
	res := r.DB.Model(&entity.Menu{}).Where("id = ?", menuID).Update("is_available", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "menu item not found")
	}
	return nil
}
