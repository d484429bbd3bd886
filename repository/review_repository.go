package repository

import (
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) Create(rev *entity.Review) error {
	return r.DB.Create(rev).Error
}

func (r *ReviewRepository) ExistsForOrder(orderID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Review{}).Where("order_id = ?", orderID).Count(&cnt).Error
	return cnt > 0, err
}

func (r *ReviewRepository) ListForRestaurant(restID uint, limit int) ([]entity.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []entity.Review
	err := r.DB.Where("restaurant_id = ?", restID).Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}
