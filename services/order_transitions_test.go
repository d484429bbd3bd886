package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

func transitionsFixture(t *testing.T) (*testEnv, *entity.User, *entity.Restaurant) {
	env := newTestEnv(t)
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, true)
	return env, owner, rest
}

func TestTransitionTableRejectsUnknownEdges(t *testing.T) {
	env, _, rest := transitionsFixture(t)

	cases := []struct {
		from entity.OrderStatus
		to   entity.OrderStatus
	}{
		{entity.OrderInitiated, entity.OrderConfirmed},
		{entity.OrderInitiated, entity.OrderDelivered},
		{entity.OrderPending, entity.OrderDelivered},
		{entity.OrderPending, entity.OrderOnTheWay},
		{entity.OrderOnTheWay, entity.OrderCanceled},
		{entity.OrderDelivered, entity.OrderPending},
	}
	for _, tc := range cases {
		o := env.mkOrder(t, 1, rest.ID, tc.from)
		err := env.orders.Transition(o.ID, tc.to, entity.ActorRestaurant)
		assert.Truef(t, apperr.Is(err, apperr.InvalidTransition) || apperr.Is(err, apperr.Forbidden),
			"%s -> %s should be rejected, got %v", tc.from, tc.to, err)
		assert.Equal(t, tc.from, env.orderStatus(t, o.ID), "status must not move on a rejected transition")
	}
}

func TestTransitionActorWhitelist(t *testing.T) {
	env, _, rest := transitionsFixture(t)

	// structurally valid edge, wrong actor
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)
	err := env.orders.Transition(o.ID, entity.OrderConfirmed, entity.ActorSystem)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	o2 := env.mkOrder(t, 1, rest.ID, entity.OrderConfirmed)
	err = env.orders.Transition(o2.ID, entity.OrderDelivered, entity.ActorPayment)
	assert.True(t, apperr.Is(err, apperr.Forbidden))

	// right actor goes through
	err = env.orders.Transition(o.ID, entity.OrderConfirmed, entity.ActorRestaurant)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderConfirmed, env.orderStatus(t, o.ID))
}

// A restaurant may not cancel a pending order: that window belongs to the
// system actor alone.
func TestRestaurantCannotCancelPending(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)

	err := env.orders.Cancel(o.ID, entity.ActorRestaurant, "busy kitchen")
	assert.True(t, apperr.Is(err, apperr.Forbidden))
	assert.Equal(t, entity.OrderPending, env.orderStatus(t, o.ID))
}

func TestSystemCancelInsideWindow(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)

	require.NoError(t, env.orders.Cancel(o.ID, entity.ActorSystem, "changed my mind"))

	got, err := env.orderRepo.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCanceled, got.Status)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, entity.ActorSystem, *got.CancelledBy)
	assert.Equal(t, "changed my mind", got.CancelReason)
	assert.NotNil(t, got.CancelledAt)
}

func TestSystemCancelAfterWindowExpires(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)

	// backdate the pending log past the 5 minute grace window
	require.NoError(t, env.db.Model(&entity.OrderStatusLog{}).
		Where("order_id = ? AND status = ?", o.ID, entity.OrderPending).
		Update("created_at", time.Now().Add(-10*time.Minute)).Error)

	err := env.orders.Cancel(o.ID, entity.ActorSystem, "too late")
	assert.True(t, apperr.Is(err, apperr.WindowExpired))
	assert.Equal(t, entity.OrderPending, env.orderStatus(t, o.ID))
}

func TestRestaurantCancelFromConfirmedHasNoWindow(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	o := env.mkOrder(t, 1, rest.ID, entity.OrderConfirmed)

	// long past any grace period; confirmed-cancel is untimed
	require.NoError(t, env.db.Model(&entity.OrderStatusLog{}).
		Where("order_id = ?", o.ID).
		Update("created_at", time.Now().Add(-2*time.Hour)).Error)

	require.NoError(t, env.orders.Cancel(o.ID, entity.ActorRestaurant, "out of stock"))
	assert.Equal(t, entity.OrderCanceled, env.orderStatus(t, o.ID))
}

func TestCancelOnlyFromPendingOrConfirmed(t *testing.T) {
	env, _, rest := transitionsFixture(t)

	for _, st := range []entity.OrderStatus{entity.OrderDelivered, entity.OrderInitiated, entity.OrderOnTheWay} {
		o := env.mkOrder(t, 1, rest.ID, st)
		err := env.orders.Cancel(o.ID, entity.ActorSystem, "")
		assert.Truef(t, apperr.Is(err, apperr.InvalidTransition), "cancel from %s, got %v", st, err)
	}
}

func TestOwnerLifecycleFlow(t *testing.T) {
	env, owner, rest := transitionsFixture(t)
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)

	require.NoError(t, env.orders.OwnerAccept(owner.ID, o.ID))
	assert.Equal(t, entity.OrderConfirmed, env.orderStatus(t, o.ID))

	require.NoError(t, env.orders.OwnerHandoff(owner.ID, o.ID))
	assert.Equal(t, entity.OrderOnTheWay, env.orderStatus(t, o.ID))

	require.NoError(t, env.orders.OwnerComplete(owner.ID, o.ID))

	got, err := env.orderRepo.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, got.Status)
	assert.NotNil(t, got.DeliveredAt)

	// every transition appended exactly one log row; the newest matches the
	// materialized status
	logs, err := env.orderRepo.ListStatusLogs(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, logs[len(logs)-1].Status)
	assert.Len(t, logs, 5) // initiated, pending, confirmed, on_the_way, delivered
}

func TestOwnerActionsRequireOwnership(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	stranger := env.createCustomer(t, "stranger@example.com")
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)

	err := env.orders.OwnerAccept(stranger.ID, o.ID)
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

// The guard closes the concurrent-transition race: a stale expected status
// updates zero rows and the attempt fails instead of clobbering.
func TestStatusGuardRejectsStaleUpdate(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	o := env.mkOrder(t, 1, rest.ID, entity.OrderPending)

	affected, err := env.orderRepo.UpdateStatusGuard(env.db, o.ID, entity.OrderPending, entity.OrderConfirmed)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// second writer still believes the order is pending
	affected, err = env.orderRepo.UpdateStatusGuard(env.db, o.ID, entity.OrderPending, entity.OrderCanceled)
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}

func TestCustomerCancelChecksOwnership(t *testing.T) {
	env, _, rest := transitionsFixture(t)
	alice := env.createCustomer(t, "alice2@example.com")
	mallory := env.createCustomer(t, "mallory@example.com")
	o := env.mkOrder(t, alice.ID, rest.ID, entity.OrderPending)

	err := env.orders.CancelByCustomer(mallory.ID, o.ID, "")
	assert.True(t, apperr.Is(err, apperr.NotFound))

	require.NoError(t, env.orders.CancelByCustomer(alice.ID, o.ID, "ordered twice"))
	assert.Equal(t, entity.OrderCanceled, env.orderStatus(t, o.ID))
}
