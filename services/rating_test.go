package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

func ratingFixture(t *testing.T) (*testEnv, *entity.User, *entity.Order) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "alice@example.com")
	owner := env.createCustomer(t, "owner@example.com")
	rest := env.createRestaurant(t, owner.ID, true)
	o := env.mkOrder(t, customer.ID, rest.ID, entity.OrderDelivered)
	return env, customer, o
}

func TestRateDeliveredOrder(t *testing.T) {
	env, customer, o := ratingFixture(t)

	rev, err := env.ratings.Rate(customer.ID, o.ID, &RateOrderIn{Rating: 5, Comment: "great burger"})
	require.NoError(t, err)
	assert.Equal(t, 5, rev.Rating)
	assert.Equal(t, o.RestaurantID, rev.RestaurantID)

	reviews, err := env.reviewRepo.ListForRestaurant(o.RestaurantID, 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestRateTwiceRejected(t *testing.T) {
	env, customer, o := ratingFixture(t)

	_, err := env.ratings.Rate(customer.ID, o.ID, &RateOrderIn{Rating: 4})
	require.NoError(t, err)

	_, err = env.ratings.Rate(customer.ID, o.ID, &RateOrderIn{Rating: 1, Comment: "changed my mind"})
	assert.True(t, apperr.Is(err, apperr.AlreadyRated))
}

func TestRateSomeoneElsesOrder(t *testing.T) {
	env, _, o := ratingFixture(t)
	stranger := env.createCustomer(t, "stranger@example.com")

	_, err := env.ratings.Rate(stranger.ID, o.ID, &RateOrderIn{Rating: 5})
	assert.True(t, apperr.Is(err, apperr.Forbidden))
}

func TestRateUndeliveredOrder(t *testing.T) {
	env, customer, _ := ratingFixture(t)
	pending := env.mkOrder(t, customer.ID, 1, entity.OrderPending)

	_, err := env.ratings.Rate(customer.ID, pending.ID, &RateOrderIn{Rating: 5})
	assert.True(t, apperr.Is(err, apperr.NotYetDelivered))
}

// Window runs from placement: an order placed 40 minutes ago is past the
// 30 minute rating window even though it was delivered.
func TestRateAfterWindowExpires(t *testing.T) {
	env, customer, o := ratingFixture(t)

	require.NoError(t, env.db.Model(&entity.Order{}).Where("id = ?", o.ID).
		Update("placed_at", time.Now().Add(-40*time.Minute)).Error)

	_, err := env.ratings.Rate(customer.ID, o.ID, &RateOrderIn{Rating: 5})
	assert.True(t, apperr.Is(err, apperr.WindowExpired))
}

func TestRateMissingOrder(t *testing.T) {
	env, customer, _ := ratingFixture(t)

	_, err := env.ratings.Rate(customer.ID, 9999, &RateOrderIn{Rating: 3})
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
