package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
)

type RatingService struct {
	DB        *gorm.DB
	Reviews   *repository.ReviewRepository
	OrderRepo *repository.OrderRepository

	// RatingWindow is measured from the order's PlacedAt.
	RatingWindow time.Duration
}

func NewRatingService(db *gorm.DB, reviews *repository.ReviewRepository, orderRepo *repository.OrderRepository, window time.Duration) *RatingService {
	return &RatingService{DB: db, Reviews: reviews, OrderRepo: orderRepo, RatingWindow: window}
}

type RateOrderIn struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Rate lets the owning customer review a delivered order, once, within the
// configured window from placement. Each violation surfaces its own error
// kind so the client can show a specific message.
func (s *RatingService) Rate(userID, orderID uint, in *RateOrderIn) (*entity.Review, error) {
	o, err := s.OrderRepo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, apperr.New(apperr.Forbidden, "order belongs to another customer")
	}
	if o.Status != entity.OrderDelivered {
		return nil, apperr.New(apperr.NotYetDelivered, "order has not been delivered yet")
	}
	if time.Since(o.PlacedAt) > s.RatingWindow {
		return nil, apperr.Newf(apperr.WindowExpired, "rating window of %s has passed", s.RatingWindow)
	}

	exists, err := s.Reviews.ExistsForOrder(orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(apperr.AlreadyRated, "order has already been rated")
	}

	rev := &entity.Review{
		Rating:       in.Rating,
		Comment:      in.Comment,
		OrderID:      o.ID,
		UserID:       userID,
		RestaurantID: o.RestaurantID,
	}
	if err := s.Reviews.Create(rev); err != nil {
		return nil, err
	}
	return rev, nil
}
