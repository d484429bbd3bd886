package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

type RestaurantRepository struct{ DB *gorm.DB }

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Get(id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.First(&rest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "restaurant not found")
		}
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) List(limit int) ([]entity.Restaurant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Restaurant
	err := r.DB.Order("id").Limit(limit).Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) IsOwnedBy(restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Restaurant{}).
		Where("id = ? AND user_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *RestaurantRepository) SetOpen(restID uint, open bool) error {
	res := r.DB.Model(&entity.Restaurant{}).Where("id = ?", restID).Update("is_open", open)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "restaurant not found")
	}
	return nil
}
