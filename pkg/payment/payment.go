// Package payment abstracts over payment methods. A Method either settles
// synchronously (cash on delivery) or hands back a redirect URL and settles
// later through the provider webhook + Verify.
package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

// Request carries what a method needs to start a payment attempt.
type Request struct {
	Amount    decimal.Decimal
	Currency  string
	Reference string // our transaction reference, echoed back by the provider
	OrderID   uint
}

// Result is the normalized outcome of Process. Provider and network errors
// are folded into Success=false + FailReason so the caller can always record
// a terminal transaction status; Process never returns a raw transport error.
type Result struct {
	Success     bool
	PaymentID   string // provider-side id; empty for offline methods
	RedirectURL string // non-empty means the customer must complete payment externally
	FailReason  string
}

// Verification is the outcome of a capture check against the provider.
type Verification struct {
	Paid       bool
	GatewayRef string
	RawStatus  string
}

type Method interface {
	Code() string
	Process(ctx context.Context, req Request) Result
	// Verify confirms capture for a provider reference. Methods without an
	// asynchronous leg return a NotSupported error.
	Verify(ctx context.Context, gatewayRef string) (*Verification, error)
}

// Selector resolves a payment method by code.
type Selector interface {
	Method(code string) (Method, error)
}

type Registry struct {
	methods map[string]Method
}

func NewRegistry(methods ...Method) *Registry {
	r := &Registry{methods: make(map[string]Method, len(methods))}
	for _, m := range methods {
		r.methods[m.Code()] = m
	}
	return r
}

func (r *Registry) Method(code string) (Method, error) {
	m, ok := r.methods[code]
	if !ok {
		return nil, apperr.Newf(apperr.NotSupported, "payment method %q is not supported", code)
	}
	return m, nil
}
