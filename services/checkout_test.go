package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/payment"
)

func codOK() payment.Method {
	return &fakeMethod{code: entity.MethodCOD, result: payment.Result{Success: true}}
}

func cardRedirect() payment.Method {
	return &fakeMethod{
		code:   entity.MethodCard,
		result: payment.Result{Success: true, PaymentID: "pay_123", RedirectURL: "https://gateway.example.com/pay/pay_123"},
		verify: &payment.Verification{Paid: true, GatewayRef: "pay_123"},
	}
}

func checkoutFixture(t *testing.T, env *testEnv) (customer *entity.User, rest *entity.Restaurant, req *CheckoutReq) {
	t.Helper()
	customer = env.createCustomer(t, "alice@example.com")
	addr := env.createAddress(t, customer.ID)
	owner := env.createCustomer(t, "owner@example.com")
	rest = env.createRestaurant(t, owner.ID, true)
	env.fillCart(t, customer.ID, rest.ID)
	req = &CheckoutReq{RestaurantID: rest.ID, AddressID: addr.ID, PaymentMethod: entity.MethodCOD}
	return customer, rest, req
}

// $10 x 2 + $5 x 1 = $25 subtotal; +$10 service +$30 delivery = $65.00.
func TestCheckoutAmounts(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer, _, req := checkoutFixture(t, env)

	res, err := env.checkout.Checkout(context.Background(), customer.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "65.00", res.Total.StringFixed(2))

	o, err := env.orderRepo.GetOrder(res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "25.00", o.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", o.ServiceFee.StringFixed(2))
	assert.Equal(t, "30.00", o.DeliveryFee.StringFixed(2))
	assert.Equal(t, "65.00", o.Total.StringFixed(2))
	assert.Equal(t, o.Total.StringFixed(2), o.Subtotal.Add(o.ServiceFee).Add(o.DeliveryFee).StringFixed(2))
}

func TestCheckoutAmountsDeterministic(t *testing.T) {
	env := newTestEnv(t, codOK())

	totals := make([]string, 0, 2)
	for _, email := range []string{"a@example.com", "b@example.com"} {
		customer := env.createCustomer(t, email)
		addr := env.createAddress(t, customer.ID)
		owner := env.createCustomer(t, "owner-"+email)
		rest := env.createRestaurant(t, owner.ID, true)
		env.fillCart(t, customer.ID, rest.ID)

		res, err := env.checkout.Checkout(context.Background(), customer.ID,
			&CheckoutReq{RestaurantID: rest.ID, AddressID: addr.ID, PaymentMethod: entity.MethodCOD})
		require.NoError(t, err)
		totals = append(totals, res.Total.StringFixed(2))
	}
	assert.Equal(t, totals[0], totals[1])
}

// Cash on delivery settles synchronously: order ends pending, transaction
// PAID, cart deactivated, no redirect.
func TestCheckoutCOD(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer, rest, req := checkoutFixture(t, env)

	res, err := env.checkout.Checkout(context.Background(), customer.ID, req)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, res.Status)
	assert.Empty(t, res.RedirectURL)
	assert.NotEmpty(t, res.TransactionRef)

	assert.Equal(t, entity.OrderPending, env.orderStatus(t, res.OrderID))

	txn, err := env.txnRepo.GetByOrderID(res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.TxPaid, txn.Status)

	cart, err := env.cartRepo.GetActiveCart(customer.ID, rest.ID)
	require.NoError(t, err)
	assert.Nil(t, cart, "cart should be deactivated after a settled checkout")

	// materialized status matches the newest log row
	last, err := env.orderRepo.LatestStatusLog(res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, last.Status)
}

// Redirect gateway: order stays initiated, transaction PENDING, redirect URL
// returned, cart still active until the webhook settles it.
func TestCheckoutGatewayRedirect(t *testing.T) {
	env := newTestEnv(t, cardRedirect())
	customer, rest, req := checkoutFixture(t, env)
	req.PaymentMethod = entity.MethodCard

	res, err := env.checkout.Checkout(context.Background(), customer.ID, req)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderInitiated, res.Status)
	assert.Equal(t, "https://gateway.example.com/pay/pay_123", res.RedirectURL)

	txn, err := env.txnRepo.GetByOrderID(res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, entity.TxPending, txn.Status)
	assert.Equal(t, "pay_123", txn.GatewayRef)

	cart, err := env.cartRepo.GetActiveCart(customer.ID, rest.ID)
	require.NoError(t, err)
	assert.NotNil(t, cart, "cart survives until payment is confirmed")
}

func TestCheckoutPaymentDeclined(t *testing.T) {
	env := newTestEnv(t, &fakeMethod{
		code:   entity.MethodCard,
		result: payment.Result{Success: false, FailReason: "insufficient funds"},
	})
	customer, _, req := checkoutFixture(t, env)
	req.PaymentMethod = entity.MethodCard

	_, err := env.checkout.Checkout(context.Background(), customer.ID, req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.PaymentFailed))

	// the order and transaction both ended terminal
	var o entity.Order
	require.NoError(t, env.db.Order("id DESC").First(&o).Error)
	assert.Equal(t, entity.OrderFailed, o.Status)

	txn, err := env.txnRepo.GetByOrderID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TxFailed, txn.Status)
}

func TestCheckoutNoActiveCart(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer := env.createCustomer(t, "alice@example.com")
	addr := env.createAddress(t, customer.ID)
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, true)

	_, err := env.checkout.Checkout(context.Background(), customer.ID,
		&CheckoutReq{RestaurantID: rest.ID, AddressID: addr.ID, PaymentMethod: entity.MethodCOD})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer := env.createCustomer(t, "alice@example.com")
	addr := env.createAddress(t, customer.ID)
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, true)
	require.NoError(t, env.db.Create(&entity.Cart{UserID: customer.ID, RestaurantID: rest.ID, IsActive: true}).Error)

	_, err := env.checkout.Checkout(context.Background(), customer.ID,
		&CheckoutReq{RestaurantID: rest.ID, AddressID: addr.ID, PaymentMethod: entity.MethodCOD})
	assert.True(t, apperr.Is(err, apperr.InvalidState))
}

func TestCheckoutItemNoLongerAvailable(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer := env.createCustomer(t, "alice@example.com")
	addr := env.createAddress(t, customer.ID)
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, true)

	m := env.createMenu(t, rest.ID, "Burger", 10, true)
	require.NoError(t, env.carts.Add(customer.ID, &AddToCartIn{RestaurantID: rest.ID, MenuID: m.ID, Qty: 1}))
	require.NoError(t, env.menuRepo.SetAvailability(m.ID, false))

	_, err := env.checkout.Checkout(context.Background(), customer.ID,
		&CheckoutReq{RestaurantID: rest.ID, AddressID: addr.ID, PaymentMethod: entity.MethodCOD})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationFailed))

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Len(t, e.Details, 1)

	// validation is read-only: nothing was persisted
	var orderCount int64
	env.db.Model(&entity.Order{}).Count(&orderCount)
	assert.Zero(t, orderCount)
}

func TestCheckoutRestaurantClosed(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer := env.createCustomer(t, "alice@example.com")
	addr := env.createAddress(t, customer.ID)
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, false)
	env.fillCart(t, customer.ID, rest.ID)

	_, err := env.checkout.Checkout(context.Background(), customer.ID,
		&CheckoutReq{RestaurantID: rest.ID, AddressID: addr.ID, PaymentMethod: entity.MethodCOD})
	assert.True(t, apperr.Is(err, apperr.InvalidState))
}

func TestCheckoutForeignAddress(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer := env.createCustomer(t, "alice@example.com")
	other := env.createCustomer(t, "mallory@example.com")
	otherAddr := env.createAddress(t, other.ID)
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, true)
	env.fillCart(t, customer.ID, rest.ID)

	_, err := env.checkout.Checkout(context.Background(), customer.ID,
		&CheckoutReq{RestaurantID: rest.ID, AddressID: otherAddr.ID, PaymentMethod: entity.MethodCOD})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestCheckoutUnknownPaymentMethod(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer, _, req := checkoutFixture(t, env)
	req.PaymentMethod = "crypto"

	_, err := env.checkout.Checkout(context.Background(), customer.ID, req)
	assert.True(t, apperr.Is(err, apperr.NotSupported))
}

// Order items freeze cart prices: repricing the menu later must not change
// the recorded lines.
func TestOrderItemsSnapshotPrices(t *testing.T) {
	env := newTestEnv(t, codOK())
	customer, _, req := checkoutFixture(t, env)

	res, err := env.checkout.Checkout(context.Background(), customer.ID, req)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&entity.Menu{}).Where("name = ?", "Burger").
		Update("price", 99).Error)

	items, err := env.orderRepo.GetOrderItems(res.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Contains(t, []string{"10.00", "5.00"}, it.UnitPrice.StringFixed(2))
	}
}
