package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForRestaurant(restID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND restaurant_id = ?", orderID, restID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "order not found")
		}
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID           uint               `json:"id"`
	RestaurantID uint               `json:"restaurantId"`
	Total        decimal.Decimal    `json:"total"`
	Status       entity.OrderStatus `json:"status"`
	PlacedAt     time.Time          `json:"placedAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, restaurant_id, total, status, placed_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

type OwnerOrderSummary struct {
	ID           uint               `json:"id"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	Total        decimal.Decimal    `json:"total"`
	Status       entity.OrderStatus `json:"status"`
	PlacedAt     time.Time          `json:"placedAt"`
}

func (r *OrderRepository) ListOrdersForRestaurant(restID uint, status *entity.OrderStatus, page, limit int) ([]OwnerOrderSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Model(&entity.Order{}).Where("restaurant_id = ?", restID)
	if status != nil && *status != "" {
		dbCount = dbCount.Where("status = ?", *status)
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []struct {
		ID        uint
		UserID    uint
		Total     decimal.Decimal
		Status    entity.OrderStatus
		PlacedAt  time.Time
		FirstName string
		LastName  string
	}
	db := r.DB.Table("orders AS o").
		Select("o.id, o.user_id, o.total, o.status, o.placed_at, u.first_name, u.last_name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ?", restID)
	if status != nil && *status != "" {
		db = db.Where("o.status = ?", *status)
	}
	if err := db.Order("o.id DESC").Limit(limit).Offset(offset).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]OwnerOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OwnerOrderSummary{
			ID:           row.ID,
			UserID:       row.UserID,
			CustomerName: strings.TrimSpace(row.FirstName + " " + row.LastName),
			Total:        row.Total,
			Status:       row.Status,
			PlacedAt:     row.PlacedAt,
		})
	}
	return out, total, nil
}

// UpdateStatusGuard flips the materialized status only if the row still holds
// the expected previous status. Zero rows affected means a concurrent
// transition (or a stale read) won the race.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// UpdateFields applies extra column writes that ride along with a transition
// (delivered_at, cancellation record). Callers run it in the same tx as the
// guard update.
func (r *OrderRepository) UpdateFields(tx *gorm.DB, orderID uint, fields map[string]any) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(fields).Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

// ---------------- Status Log ----------------

func (r *OrderRepository) AppendStatusLog(tx *gorm.DB, orderID uint, status entity.OrderStatus, by entity.Actor) error {
	return tx.Create(&entity.OrderStatusLog{OrderID: orderID, Status: status, ChangedBy: by}).Error
}

func (r *OrderRepository) LatestStatusLog(orderID uint) (*entity.OrderStatusLog, error) {
	var row entity.OrderStatusLog
	err := r.DB.Where("order_id = ?", orderID).Order("id DESC").First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// StatusLogAt returns the row that entered the given status, used for
// deadline checks (cancellation window runs from the "pending" row).
func (r *OrderRepository) StatusLogAt(orderID uint, status entity.OrderStatus) (*entity.OrderStatusLog, error) {
	var row entity.OrderStatusLog
	err := r.DB.Where("order_id = ? AND status = ?", orderID, status).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Newf(apperr.NotFound, "no %s status log for order", status)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *OrderRepository) ListStatusLogs(orderID uint) ([]entity.OrderStatusLog, error) {
	var rows []entity.OrderStatusLog
	err := r.DB.Where("order_id = ?", orderID).Order("id").Find(&rows).Error
	return rows, err
}
