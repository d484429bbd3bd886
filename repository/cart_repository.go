package repository

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
)

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetActiveCart returns the customer's active cart for a restaurant, with
// items and their menus preloaded, or nil if there is none.
func (r *CartRepository) GetActiveCart(userID, restaurantID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ? AND restaurant_id = ? AND is_active = ?", userID, restaurantID, true).
		Preload("Items").
		Preload("Items.Menu").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetActiveCartByUser returns the customer's active cart regardless of
// restaurant (the "my cart" view), or nil.
func (r *CartRepository) GetActiveCartByUser(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Preload("Items").
		Preload("Items.Menu").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) Create(c *entity.Cart) error {
	return r.DB.Create(c).Error
}

// UpsertItem merges same-menu same-note lines, otherwise appends a new line.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_id = ? AND note = ?", cartID, row.MenuID, row.Note).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		exist.Total = exist.UnitPrice.Mul(decimalFromInt(exist.Qty))
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

func (r *CartRepository) GetItemForUser(userID, itemID uint) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.DB.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ? AND is_active = ?)", itemID, userID, true).
		First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *CartRepository) SaveItem(tx *gorm.DB, it *entity.CartItem) error {
	return tx.Save(it).Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, itemID uint) error {
	return tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ? AND is_active = ?)", itemID, userID, true).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearItems(tx *gorm.DB, cartID uint) error {
	return tx.Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}

// Deactivate retires a cart after checkout. The cart and its lines stay on
// record; the next add starts a fresh cart.
func (r *CartRepository) Deactivate(tx *gorm.DB, cartID uint) error {
	return tx.Model(&entity.Cart{}).Where("id = ?", cartID).Update("is_active", false).Error
}

// DeactivateForUser retires whatever active cart the customer has for the
// restaurant; used by the webhook path, which only knows the order's refs.
func (r *CartRepository) DeactivateForUser(tx *gorm.DB, userID, restaurantID uint) error {
	return tx.Model(&entity.Cart{}).
		Where("user_id = ? AND restaurant_id = ? AND is_active = ?", userID, restaurantID, true).
		Update("is_active", false).Error
}
