package entity

// OrderStatus is the materialized lifecycle state of an order. The same
// value is appended to order_status_logs on every transition.
type OrderStatus string

const (
	OrderInitiated OrderStatus = "initiated"
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderOnTheWay  OrderStatus = "on_the_way"
	OrderDelivered OrderStatus = "delivered"
	OrderCanceled  OrderStatus = "canceled"
	OrderFailed    OrderStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderCanceled || s == OrderDelivered || s == OrderFailed
}

// TxStatus is the state of a single payment attempt.
type TxStatus string

const (
	TxInitiated TxStatus = "INITIATED"
	TxPending   TxStatus = "PENDING"
	TxPaid      TxStatus = "PAID"
	TxFailed    TxStatus = "FAILED"
)

// Actor identifies the party requesting a state transition.
type Actor string

const (
	ActorSystem     Actor = "system"
	ActorRestaurant Actor = "restaurant"
	ActorPayment    Actor = "payment"
)

// Payment method codes. "cod" settles synchronously on delivery,
// "card" goes through the redirect gateway.
const (
	MethodCOD  = "cod"
	MethodCard = "card"
)
