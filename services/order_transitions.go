package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

// orderTransitions is the authoritative lifecycle table: every status lists
// the statuses an order may move to next. canceled, delivered and failed are
// terminal and appear with no successors.
var orderTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.OrderInitiated: {entity.OrderPending, entity.OrderFailed},
	entity.OrderPending:   {entity.OrderConfirmed, entity.OrderCanceled},
	entity.OrderConfirmed: {entity.OrderOnTheWay, entity.OrderCanceled, entity.OrderDelivered},
	entity.OrderOnTheWay:  {entity.OrderDelivered},
	entity.OrderCanceled:  {},
	entity.OrderDelivered: {},
	entity.OrderFailed:    {},
}

// transitionActors whitelists, per target status, the actors allowed to
// move an order INTO it. A structurally valid transition by the wrong actor
// is Forbidden, not InvalidTransition.
var transitionActors = map[entity.OrderStatus][]entity.Actor{
	entity.OrderPending:   {entity.ActorSystem, entity.ActorPayment},
	entity.OrderFailed:    {entity.ActorSystem, entity.ActorPayment},
	entity.OrderConfirmed: {entity.ActorRestaurant},
	entity.OrderOnTheWay:  {entity.ActorRestaurant},
	entity.OrderDelivered: {entity.ActorRestaurant},
	entity.OrderCanceled:  {entity.ActorSystem, entity.ActorRestaurant},
}

func transitionAllowed(from, to entity.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func actorMayEnter(to entity.OrderStatus, actor entity.Actor) bool {
	for _, a := range transitionActors[to] {
		if a == actor {
			return true
		}
	}
	return false
}

// transitionTx performs one atomic transition inside the caller's tx:
// conditional status flip guarded on the previously read status, the
// append-only log row, and any rider columns (delivered_at, cancellation
// record). Zero rows affected on the guard means a concurrent transition
// won; the attempt fails rather than clobbering it.
func (s *OrderService) transitionTx(tx *gorm.DB, o *entity.Order, to entity.OrderStatus, actor entity.Actor, extra map[string]any) error {
	if !transitionAllowed(o.Status, to) {
		return apperr.Newf(apperr.InvalidTransition, "order cannot move from %s to %s", o.Status, to)
	}
	if !actorMayEnter(to, actor) {
		return apperr.Newf(apperr.Forbidden, "%s may not move an order to %s", actor, to)
	}

	affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.New(apperr.InvalidTransition, "order status changed concurrently")
	}
	if err := s.Repo.AppendStatusLog(tx, o.ID, to, actor); err != nil {
		return err
	}

	if to == entity.OrderDelivered {
		if extra == nil {
			extra = map[string]any{}
		}
		extra["delivered_at"] = time.Now()
	}
	if len(extra) > 0 {
		if err := s.Repo.UpdateFields(tx, o.ID, extra); err != nil {
			return err
		}
	}

	o.Status = to
	return nil
}

// Transition is the generic entry point for actor-driven status changes.
func (s *OrderService) Transition(orderID uint, to entity.OrderStatus, actor entity.Actor) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return err
		}
		return s.transitionTx(tx, o, to, actor, nil)
	})
}

// Cancel layers the cancellation rules over the generic transition check:
// from pending only the system may cancel, and only inside the grace
// window; from confirmed only the restaurant may cancel, untimed.
func (s *OrderService) Cancel(orderID uint, actor entity.Actor, reason string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return err
		}

		switch o.Status {
		case entity.OrderPending:
			if actor != entity.ActorSystem {
				return apperr.Newf(apperr.Forbidden, "only the system may cancel a %s order", o.Status)
			}
			pendingLog, err := s.Repo.StatusLogAt(o.ID, entity.OrderPending)
			if err != nil {
				return err
			}
			if time.Since(pendingLog.CreatedAt) > s.CancelWindow {
				return apperr.Newf(apperr.WindowExpired, "cancellation window of %s has passed", s.CancelWindow)
			}
		case entity.OrderConfirmed:
			if actor != entity.ActorRestaurant {
				return apperr.Newf(apperr.Forbidden, "only the restaurant may cancel a %s order", o.Status)
			}
		default:
			return apperr.Newf(apperr.InvalidTransition, "order in %s cannot be canceled", o.Status)
		}

		extra := map[string]any{
			"cancelled_by":  actor,
			"cancel_reason": reason,
			"cancelled_at":  time.Now(),
		}
		return s.transitionTx(tx, o, entity.OrderCanceled, actor, extra)
	})
}

// CancelByCustomer handles the customer-facing cancel: ownership is checked
// here, then the request runs as the system actor under the pending-window
// rule.
func (s *OrderService) CancelByCustomer(userID, orderID uint, reason string) error {
	if _, err := s.Repo.GetOrderForUser(userID, orderID); err != nil {
		return err
	}
	return s.Cancel(orderID, entity.ActorSystem, reason)
}

// ----- Owner actions -----

func (s *OrderService) OwnerAccept(ownerID, orderID uint) error {
	return s.ownerTransition(ownerID, orderID, entity.OrderConfirmed)
}

func (s *OrderService) OwnerHandoff(ownerID, orderID uint) error {
	return s.ownerTransition(ownerID, orderID, entity.OrderOnTheWay)
}

func (s *OrderService) OwnerComplete(ownerID, orderID uint) error {
	return s.ownerTransition(ownerID, orderID, entity.OrderDelivered)
}

func (s *OrderService) OwnerCancel(ownerID, orderID uint, reason string) error {
	o, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return err
	}
	if err := s.requireOwner(o.RestaurantID, ownerID); err != nil {
		return err
	}
	return s.Cancel(orderID, entity.ActorRestaurant, reason)
}

func (s *OrderService) ownerTransition(ownerID, orderID uint, to entity.OrderStatus) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return err
		}
		if err := s.requireOwner(o.RestaurantID, ownerID); err != nil {
			return err
		}
		return s.transitionTx(tx, o, to, entity.ActorRestaurant, nil)
	})
}
