package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository

	// CancelWindow bounds system cancellation from "pending", measured from
	// the pending status-log row.
	CancelWindow time.Duration
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, restRepo *repository.RestaurantRepository, cancelWindow time.Duration) *OrderService {
	return &OrderService{DB: db, Repo: repo, RestRepo: restRepo, CancelWindow: cancelWindow}
}

// ----- List & Detail -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	Order entity.Order            `json:"order"`
	Items []entity.OrderItem      `json:"items"`
	Logs  []entity.OrderStatusLog `json:"statusLogs"`
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) detail(o *entity.Order) (*OrderDetail, error) {
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	logs, err := s.Repo.ListStatusLogs(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items, Logs: logs}, nil
}

type OwnerOrderListOut struct {
	Items []repository.OwnerOrderSummary `json:"items"`
	Total int64                          `json:"total"`
	Page  int                            `json:"page"`
	Limit int                            `json:"limit"`
}

func (s *OrderService) ListForRestaurant(userID, restID uint, status *entity.OrderStatus, page, limit int) (*OwnerOrderListOut, error) {
	if err := s.requireOwner(restID, userID); err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListOrdersForRestaurant(restID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return &OwnerOrderListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *OrderService) DetailForRestaurant(userID, restID, orderID uint) (*OrderDetail, error) {
	if err := s.requireOwner(restID, userID); err != nil {
		return nil, err
	}
	o, err := s.Repo.GetOrderForRestaurant(restID, orderID)
	if err != nil {
		return nil, err
	}
	return s.detail(o)
}

func (s *OrderService) requireOwner(restID, userID uint) error {
	ok, err := s.RestRepo.IsOwnedBy(restID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.Forbidden, "not the restaurant owner")
	}
	return nil
}
