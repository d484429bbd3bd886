package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/payment"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
)

// fakeMethod is a scriptable payment method for pipeline tests.
type fakeMethod struct {
	code      string
	result    payment.Result
	verify    *payment.Verification
	verifyErr error
}

func (f *fakeMethod) Code() string { return f.code }

func (f *fakeMethod) Process(ctx context.Context, req payment.Request) payment.Result {
	return f.result
}

func (f *fakeMethod) Verify(ctx context.Context, gatewayRef string) (*payment.Verification, error) {
	return f.verify, f.verifyErr
}

type noopNotifier struct{}

func (noopNotifier) Notify(channel string, payload any) {}

type testEnv struct {
	db *gorm.DB

	userRepo   *repository.UserRepository
	restRepo   *repository.RestaurantRepository
	menuRepo   *repository.MenuRepository
	cartRepo   *repository.CartRepository
	orderRepo  *repository.OrderRepository
	txnRepo    *repository.TransactionRepository
	reviewRepo *repository.ReviewRepository

	carts    *CartService
	orders   *OrderService
	checkout *CheckoutService
	txns     *TransactionService
	ratings  *RatingService
}

func newTestEnv(t *testing.T, methods ...payment.Method) *testEnv {
	t.Helper()

	// A file-backed DB (not ":memory:") so that every pooled connection
	// sees the same database; t.TempDir keeps each test isolated.
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{}, &entity.Address{},
		&entity.Restaurant{}, &entity.Menu{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{}, &entity.OrderStatusLog{},
		&entity.Transaction{}, &entity.TransactionStatusLog{},
		&entity.Review{},
	))

	env := &testEnv{
		db:         db,
		userRepo:   repository.NewUserRepository(db),
		restRepo:   repository.NewRestaurantRepository(db),
		menuRepo:   repository.NewMenuRepository(db),
		cartRepo:   repository.NewCartRepository(db),
		orderRepo:  repository.NewOrderRepository(db),
		txnRepo:    repository.NewTransactionRepository(db),
		reviewRepo: repository.NewReviewRepository(db),
	}

	registry := payment.NewRegistry(methods...)

	env.carts = NewCartService(db, env.cartRepo, env.menuRepo)
	env.orders = NewOrderService(db, env.orderRepo, env.restRepo, 5*time.Minute)
	env.txns = NewTransactionService(db, env.txnRepo, env.orders, env.cartRepo, registry, noopNotifier{})
	env.checkout = NewCheckoutService(
		db, env.orders, env.userRepo, env.restRepo, env.menuRepo, env.cartRepo, env.txnRepo,
		registry, noopNotifier{},
		CheckoutConfig{
			ServiceFee:  decimal.NewFromInt(10),
			DeliveryFee: decimal.NewFromInt(30),
			Currency:    "USD",
		},
	)
	env.ratings = NewRatingService(db, env.reviewRepo, env.orderRepo, 30*time.Minute)

	return env
}

// ----- fixtures -----

func (e *testEnv) createCustomer(t *testing.T, email string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", FirstName: "Test", LastName: "Customer", Role: "customer"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *testEnv) createAddress(t *testing.T, userID uint) *entity.Address {
	t.Helper()
	a := &entity.Address{UserID: userID, Label: "Home", Line1: "1 Main St", City: "Springfield", Phone: "555-0100"}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

func (e *testEnv) createRestaurant(t *testing.T, ownerID uint, open bool) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: "Testaurant", IsOpen: open, UserID: ownerID}
	require.NoError(t, e.db.Create(r).Error)
	if !open {
		// gorm skips zero-valued fields that carry a default tag, so
		// IsOpen:false is not written by Create; force the column.
		require.NoError(t, e.db.Model(r).Update("is_open", false).Error)
	}
	return r
}

func (e *testEnv) createMenu(t *testing.T, restID uint, name string, price int64, available bool) *entity.Menu {
	t.Helper()
	m := &entity.Menu{Name: name, Price: decimal.NewFromInt(price), IsAvailable: available, RestaurantID: restID}
	require.NoError(t, e.db.Create(m).Error)
	return m
}

// fillCart builds the standard two-line cart: $10 x 2 and $5 x 1.
func (e *testEnv) fillCart(t *testing.T, userID, restID uint) {
	t.Helper()
	burger := e.createMenu(t, restID, "Burger", 10, true)
	fries := e.createMenu(t, restID, "Fries", 5, true)
	require.NoError(t, e.carts.Add(userID, &AddToCartIn{RestaurantID: restID, MenuID: burger.ID, Qty: 2}))
	require.NoError(t, e.carts.Add(userID, &AddToCartIn{RestaurantID: restID, MenuID: fries.ID, Qty: 1}))
}

// mkOrder writes an order directly in the given status, with a matching
// status-log trail, bypassing checkout.
func (e *testEnv) mkOrder(t *testing.T, userID, restID uint, status entity.OrderStatus) *entity.Order {
	t.Helper()

	o := &entity.Order{
		UserID:       userID,
		RestaurantID: restID,
		Total:        decimal.NewFromInt(65),
		Status:       status,
		PlacedAt:     time.Now(),
	}
	require.NoError(t, e.db.Create(o).Error)

	trail := map[entity.OrderStatus][]entity.OrderStatus{
		entity.OrderInitiated: {entity.OrderInitiated},
		entity.OrderPending:   {entity.OrderInitiated, entity.OrderPending},
		entity.OrderConfirmed: {entity.OrderInitiated, entity.OrderPending, entity.OrderConfirmed},
		entity.OrderOnTheWay:  {entity.OrderInitiated, entity.OrderPending, entity.OrderConfirmed, entity.OrderOnTheWay},
		entity.OrderDelivered: {entity.OrderInitiated, entity.OrderPending, entity.OrderConfirmed, entity.OrderDelivered},
	}[status]
	require.NotEmpty(t, trail, "unsupported fixture status %s", status)

	for _, st := range trail {
		require.NoError(t, e.db.Create(&entity.OrderStatusLog{OrderID: o.ID, Status: st, ChangedBy: entity.ActorSystem}).Error)
	}
	return o
}

func (e *testEnv) orderStatus(t *testing.T, orderID uint) entity.OrderStatus {
	t.Helper()
	o, err := e.orderRepo.GetOrder(orderID)
	require.NoError(t, err)
	return o.Status
}

func (e *testEnv) countOrderLogs(t *testing.T, orderID uint) int {
	t.Helper()
	logs, err := e.orderRepo.ListStatusLogs(orderID)
	require.NoError(t, err)
	return len(logs)
}

func (e *testEnv) countTxnLogs(t *testing.T, txnID uint) int {
	t.Helper()
	logs, err := e.txnRepo.ListStatusLogs(txnID)
	require.NoError(t, err)
	return len(logs)
}
