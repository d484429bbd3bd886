package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/payment"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
)

// CheckoutConfig holds the fee schedule and currency resolved from
// configuration once at startup.
type CheckoutConfig struct {
	ServiceFee  decimal.Decimal
	DeliveryFee decimal.Decimal
	Currency    string
}

type CheckoutService struct {
	DB *gorm.DB

	Orders   *OrderService
	UserRepo *repository.UserRepository
	RestRepo *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
	CartRepo *repository.CartRepository
	TxnRepo  *repository.TransactionRepository

	Payments payment.Selector
	Notifier Notifier
	Cfg      CheckoutConfig
}

func NewCheckoutService(
	db *gorm.DB,
	orders *OrderService,
	userRepo *repository.UserRepository,
	restRepo *repository.RestaurantRepository,
	menuRepo *repository.MenuRepository,
	cartRepo *repository.CartRepository,
	txnRepo *repository.TransactionRepository,
	payments payment.Selector,
	notifier Notifier,
	cfg CheckoutConfig,
) *CheckoutService {
	return &CheckoutService{
		DB:       db,
		Orders:   orders,
		UserRepo: userRepo,
		RestRepo: restRepo,
		MenuRepo: menuRepo,
		CartRepo: cartRepo,
		TxnRepo:  txnRepo,
		Payments: payments,
		Notifier: notifier,
		Cfg:      cfg,
	}
}

type CheckoutReq struct {
	RestaurantID  uint   `json:"restaurantId" binding:"required"`
	AddressID     uint   `json:"addressId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type CheckoutRes struct {
	OrderID        uint               `json:"orderId"`
	Status         entity.OrderStatus `json:"status"`
	Total          decimal.Decimal    `json:"total"`
	TransactionRef string             `json:"transactionRef"`
	RedirectURL    string             `json:"redirectUrl,omitempty"`
}

// checkoutContext is the shared state the pipeline steps enrich in order.
type checkoutContext struct {
	userID uint
	req    *CheckoutReq

	customer   *entity.User
	restaurant *entity.Restaurant
	address    *entity.Address
	cart       *entity.Cart

	subtotal    decimal.Decimal
	serviceFee  decimal.Decimal
	deliveryFee decimal.Decimal
	total       decimal.Decimal

	order *entity.Order
	txn   *entity.Transaction
}

type checkoutStep func(tx *gorm.DB, cc *checkoutContext) error

// steps returns the pipeline in its canonical order. The order is a visible
// constant: validation first, then amounts, then the two persisted records.
func (s *CheckoutService) steps() []checkoutStep {
	return []checkoutStep{
		s.validateRestaurant,
		s.validateCustomer,
		s.validateAddress,
		s.validateCart,
		s.calculateAmounts,
		s.createOrder,
		s.createTransaction,
	}
}

// Checkout turns the customer's active cart into a paid (or payable) order.
// Steps run inside one DB transaction up through the order and INITIATED
// transaction rows; the external payment call happens after commit so a
// crash mid-call still leaves an auditable, reconcilable record.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, req *CheckoutReq) (*CheckoutRes, error) {
	method, err := s.Payments.Method(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	cc := &checkoutContext{userID: userID, req: req}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, step := range s.steps() {
			if err := step(tx, cc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := method.Process(ctx, payment.Request{
		Amount:    cc.total,
		Currency:  s.Cfg.Currency,
		Reference: cc.txn.Reference,
		OrderID:   cc.order.ID,
	})

	return s.settle(cc, result)
}

// ----- pipeline steps -----

func (s *CheckoutService) validateRestaurant(tx *gorm.DB, cc *checkoutContext) error {
	rest, err := s.RestRepo.Get(cc.req.RestaurantID)
	if err != nil {
		return err
	}
	if !rest.IsOpen {
		return apperr.New(apperr.InvalidState, "restaurant is not accepting orders")
	}
	cc.restaurant = rest
	return nil
}

func (s *CheckoutService) validateCustomer(tx *gorm.DB, cc *checkoutContext) error {
	customer, err := s.UserRepo.FindByID(cc.userID)
	if err != nil {
		return err
	}
	cc.customer = customer
	return nil
}

func (s *CheckoutService) validateAddress(tx *gorm.DB, cc *checkoutContext) error {
	addr, err := s.UserRepo.GetAddressForUser(cc.userID, cc.req.AddressID)
	if err != nil {
		return err
	}
	cc.address = addr
	return nil
}

// validateCart certifies the active cart is checkout-ready: it exists, has
// lines, and every line still references an available item on the
// restaurant's menu. Read-only; reasons are itemized so the customer can fix
// the cart in one pass.
func (s *CheckoutService) validateCart(tx *gorm.DB, cc *checkoutContext) error {
	cart, err := s.CartRepo.GetActiveCart(cc.userID, cc.req.RestaurantID)
	if err != nil {
		return err
	}
	if cart == nil {
		return apperr.New(apperr.NotFound, "no active cart for this restaurant")
	}
	if len(cart.Items) == 0 {
		return apperr.New(apperr.InvalidState, "cart is empty")
	}

	var reasons []string
	for _, it := range cart.Items {
		active, err := s.MenuRepo.IsItemActiveInMenu(it.MenuID, cc.req.RestaurantID)
		if err != nil {
			return err
		}
		if !active {
			reasons = append(reasons, fmt.Sprintf("item %q is no longer available", it.Menu.Name))
		}
	}
	if len(reasons) > 0 {
		return apperr.WithDetails(apperr.ValidationFailed, "cart has unavailable items", reasons)
	}

	cc.cart = cart
	return nil
}

// calculateAmounts is deterministic: each component is rounded to 2 decimal
// places independently before summation, so the same cart always produces
// the same total.
func (s *CheckoutService) calculateAmounts(tx *gorm.DB, cc *checkoutContext) error {
	subtotal := decimal.Zero
	for _, it := range cc.cart.Items {
		subtotal = subtotal.Add(it.Total)
	}
	cc.subtotal = subtotal.Round(2)
	cc.serviceFee = s.Cfg.ServiceFee.Round(2)
	cc.deliveryFee = s.Cfg.DeliveryFee.Round(2)
	cc.total = cc.subtotal.Add(cc.serviceFee).Add(cc.deliveryFee)

	if cc.total.IsNegative() {
		return apperr.New(apperr.InvalidState, "order total cannot be negative")
	}
	return nil
}

func (s *CheckoutService) createOrder(tx *gorm.DB, cc *checkoutContext) error {
	order := &entity.Order{
		UserID:          cc.userID,
		RestaurantID:    cc.restaurant.ID,
		DeliveryAddress: cc.address.Snapshot(),
		PaymentMethod:   cc.req.PaymentMethod,
		Subtotal:        cc.subtotal,
		ServiceFee:      cc.serviceFee,
		DeliveryFee:     cc.deliveryFee,
		Total:           cc.total,
		Status:          entity.OrderInitiated,
		PlacedAt:        time.Now(),
	}
	if err := s.Orders.Repo.CreateOrder(tx, order); err != nil {
		return err
	}

	for _, it := range cc.cart.Items {
		oi := &entity.OrderItem{
			OrderID:   order.ID,
			MenuID:    it.MenuID,
			Qty:       it.Qty,
			UnitPrice: it.UnitPrice,
			Total:     it.Total,
			Note:      it.Note,
		}
		if err := s.Orders.Repo.CreateOrderItem(tx, oi); err != nil {
			return err
		}
	}

	if err := s.Orders.Repo.AppendStatusLog(tx, order.ID, entity.OrderInitiated, entity.ActorSystem); err != nil {
		return err
	}

	cc.order = order
	return nil
}

func (s *CheckoutService) createTransaction(tx *gorm.DB, cc *checkoutContext) error {
	txn := &entity.Transaction{
		OrderID:       cc.order.ID,
		Amount:        cc.total,
		PaymentMethod: cc.req.PaymentMethod,
		Reference:     uuid.NewString(),
		Status:        entity.TxInitiated,
	}
	if err := s.TxnRepo.Create(tx, txn); err != nil {
		return err
	}
	if err := s.TxnRepo.AppendStatusLog(tx, txn.ID, entity.TxInitiated); err != nil {
		return err
	}
	cc.txn = txn
	return nil
}

// ----- post-pipeline classification -----

// settle records the payment outcome. Three cases: immediate failure,
// redirect (asynchronous completion via webhook), synchronous settle.
func (s *CheckoutService) settle(cc *checkoutContext, result payment.Result) (*CheckoutRes, error) {
	if !result.Success {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if err := s.flipTxn(tx, cc.txn, entity.TxFailed); err != nil {
				return err
			}
			return s.Orders.transitionTx(tx, cc.order, entity.OrderFailed, entity.ActorPayment, nil)
		})
		if err != nil {
			return nil, err
		}
		reason := result.FailReason
		if reason == "" {
			reason = "payment was declined"
		}
		return nil, apperr.New(apperr.PaymentFailed, reason)
	}

	if result.RedirectURL != "" {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			if result.PaymentID != "" {
				if err := s.TxnRepo.SetGatewayRef(tx, cc.txn.ID, result.PaymentID); err != nil {
					return err
				}
			}
			return s.flipTxn(tx, cc.txn, entity.TxPending)
		})
		if err != nil {
			return nil, err
		}
		// Order stays initiated until the provider webhook lands.
		return &CheckoutRes{
			OrderID:        cc.order.ID,
			Status:         cc.order.Status,
			Total:          cc.total,
			TransactionRef: cc.txn.Reference,
			RedirectURL:    result.RedirectURL,
		}, nil
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if result.PaymentID != "" {
			if err := s.TxnRepo.SetGatewayRef(tx, cc.txn.ID, result.PaymentID); err != nil {
				return err
			}
		}
		if err := s.flipTxn(tx, cc.txn, entity.TxPaid); err != nil {
			return err
		}
		if err := s.Orders.transitionTx(tx, cc.order, entity.OrderPending, entity.ActorSystem, nil); err != nil {
			return err
		}
		return s.CartRepo.Deactivate(tx, cc.cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Notify("order.placed", map[string]any{
		"orderId":      cc.order.ID,
		"restaurantId": cc.order.RestaurantID,
		"total":        cc.total.StringFixed(2),
	})

	return &CheckoutRes{
		OrderID:        cc.order.ID,
		Status:         cc.order.Status,
		Total:          cc.total,
		TransactionRef: cc.txn.Reference,
	}, nil
}

func (s *CheckoutService) flipTxn(tx *gorm.DB, txn *entity.Transaction, to entity.TxStatus) error {
	affected, err := s.TxnRepo.UpdateStatusGuard(tx, txn.ID, txn.Status, to)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.InvalidTransition, "transaction status changed concurrently")
	}
	if err := s.TxnRepo.AppendStatusLog(tx, txn.ID, to); err != nil {
		return err
	}
	txn.Status = to
	return nil
}
