package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(db *gorm.DB, cartRepo *repository.CartRepository, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{DB: db, CartRepo: cartRepo, MenuRepo: menuRepo}
}

type AddToCartIn struct {
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	MenuID       uint   `json:"menuId" binding:"required"`
	Qty          int    `json:"qty" binding:"min=1"`
	Note         string `json:"note"`
}

func (s *CartService) Get(userID uint) (*entity.Cart, decimal.Decimal, error) {
	c, err := s.CartRepo.GetActiveCartByUser(userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if c == nil {
		return &entity.Cart{UserID: userID, IsActive: true}, decimal.Zero, nil
	}
	subtotal := decimal.Zero
	for _, it := range c.Items {
		subtotal = subtotal.Add(it.Total)
	}
	return c, subtotal.Round(2), nil
}

// Add puts a line in the customer's active cart, creating the cart lazily on
// first add. Carts are single-restaurant: adding from a different restaurant
// retires the old cart and starts a fresh one.
func (s *CartService) Add(userID uint, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	m, err := s.MenuRepo.Get(in.MenuID)
	if err != nil {
		return err
	}
	if m.RestaurantID != in.RestaurantID {
		return apperr.New(apperr.ValidationFailed, "menu item does not belong to this restaurant")
	}
	if !m.IsAvailable {
		return apperr.New(apperr.ValidationFailed, "menu item is not available")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetActiveCartByUser(userID)
		if err != nil {
			return err
		}
		if cart != nil && cart.RestaurantID != in.RestaurantID {
			if err := s.CartRepo.Deactivate(tx, cart.ID); err != nil {
				return err
			}
			cart = nil
		}
		if cart == nil {
			cart = &entity.Cart{UserID: userID, RestaurantID: in.RestaurantID, IsActive: true}
			if err := tx.Create(cart).Error; err != nil {
				return err
			}
		}

		// Price is frozen at add time.
		unit := m.Price.Round(2)
		line := &entity.CartItem{
			MenuID:    m.ID,
			Qty:       in.Qty,
			UnitPrice: unit,
			Total:     unit.Mul(decimal.NewFromInt(int64(in.Qty))),
			Note:      in.Note,
		}
		return s.CartRepo.UpsertItem(tx, cart.ID, line)
	})
}

func (s *CartService) UpdateQty(userID, itemID uint, qty int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if qty <= 0 {
			return s.CartRepo.RemoveItem(tx, userID, itemID)
		}
		it, err := s.CartRepo.GetItemForUser(userID, itemID)
		if err != nil {
			return err
		}
		if it == nil {
			return apperr.New(apperr.NotFound, "cart item not found")
		}
		it.Qty = qty
		it.Total = it.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		return s.CartRepo.SaveItem(tx, it)
	})
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, userID, itemID)
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.CartRepo.GetActiveCartByUser(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return nil
		}
		if err := s.CartRepo.ClearItems(tx, cart.ID); err != nil {
			return err
		}
		return s.CartRepo.Deactivate(tx, cart.ID)
	})
}
