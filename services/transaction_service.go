package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/payment"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
)

type TransactionService struct {
	DB       *gorm.DB
	Repo     *repository.TransactionRepository
	Orders   *OrderService
	CartRepo *repository.CartRepository
	Payments payment.Selector
	Notifier Notifier
}

func NewTransactionService(
	db *gorm.DB,
	repo *repository.TransactionRepository,
	orders *OrderService,
	cartRepo *repository.CartRepository,
	payments payment.Selector,
	notifier Notifier,
) *TransactionService {
	return &TransactionService{DB: db, Repo: repo, Orders: orders, CartRepo: cartRepo, Payments: payments, Notifier: notifier}
}

// WebhookEvent is the provider callback payload.
type WebhookEvent struct {
	ProviderOrderID string `json:"providerOrderId" binding:"required"`
	EventType       string `json:"eventType" binding:"required"`
	Status          string `json:"status"`
}

const (
	EventPaymentApproved = "payment.approved"
	EventPaymentFailed   = "payment.failed"
)

// HandleWebhook drives the initiated→pending|failed order transition from a
// provider callback. Duplicate deliveries are a no-op: an already-PAID
// transaction returns nil without touching either status log, and the
// guarded updates inside make the check race-safe.
func (s *TransactionService) HandleWebhook(ctx context.Context, ev *WebhookEvent) error {
	txn, err := s.Repo.GetByGatewayRef(ev.ProviderOrderID)
	if err != nil {
		return err
	}
	if txn.Status == entity.TxPaid {
		return nil
	}
	if txn.Status == entity.TxFailed {
		return nil
	}

	switch ev.EventType {
	case EventPaymentApproved:
		return s.settleApproved(ctx, txn)
	case EventPaymentFailed:
		return s.settleFailed(txn)
	default:
		return apperr.Newf(apperr.NotSupported, "unhandled webhook event %q", ev.EventType)
	}
}

func (s *TransactionService) settleApproved(ctx context.Context, txn *entity.Transaction) error {
	method, err := s.Payments.Method(txn.PaymentMethod)
	if err != nil {
		return err
	}

	// Never trust the callback alone: capture is confirmed against the
	// provider before anything is marked paid. A transport error here is
	// returned as-is so the provider retries the webhook.
	v, err := method.Verify(ctx, txn.GatewayRef)
	if err != nil {
		return err
	}
	if !v.Paid {
		return s.settleFailed(txn)
	}

	var order *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, txn.ID, txn.Status, entity.TxPaid)
		if err != nil {
			return err
		}
		if affected == 0 {
			// A concurrent delivery of the same event got here first.
			return nil
		}
		if err := s.Repo.AppendStatusLog(tx, txn.ID, entity.TxPaid); err != nil {
			return err
		}

		order, err = s.Orders.Repo.GetOrder(txn.OrderID)
		if err != nil {
			return err
		}
		if err := s.Orders.transitionTx(tx, order, entity.OrderPending, entity.ActorPayment, nil); err != nil {
			return err
		}
		return s.CartRepo.DeactivateForUser(tx, order.UserID, order.RestaurantID)
	})
	if err != nil {
		return err
	}

	if order != nil {
		s.Notifier.Notify("order.placed", map[string]any{
			"orderId":      order.ID,
			"restaurantId": order.RestaurantID,
			"total":        order.Total.StringFixed(2),
		})
	}
	return nil
}

func (s *TransactionService) settleFailed(txn *entity.Transaction) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, txn.ID, txn.Status, entity.TxFailed)
		if err != nil {
			return err
		}
		if affected == 0 {
			return nil
		}
		if err := s.Repo.AppendStatusLog(tx, txn.ID, entity.TxFailed); err != nil {
			return err
		}

		order, err := s.Orders.Repo.GetOrder(txn.OrderID)
		if err != nil {
			return err
		}
		return s.Orders.transitionTx(tx, order, entity.OrderFailed, entity.ActorPayment, nil)
	})
}

// LedgerForOrder returns the payment attempt and both audit trails for an
// order the customer owns.
type Ledger struct {
	Transaction entity.Transaction            `json:"transaction"`
	Logs        []entity.TransactionStatusLog `json:"statusLogs"`
}

func (s *TransactionService) LedgerForOrder(userID, orderID uint) (*Ledger, error) {
	if _, err := s.Orders.Repo.GetOrderForUser(userID, orderID); err != nil {
		return nil, err
	}
	txn, err := s.Repo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	logs, err := s.Repo.ListStatusLogs(txn.ID)
	if err != nil {
		return nil, err
	}
	return &Ledger{Transaction: *txn, Logs: logs}, nil
}
