package payment

import (
	"context"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

// codMethod is the immediate/offline variant: payment is collected at the
// door, so processing always succeeds synchronously and there is nothing to
// verify later.
type codMethod struct{}

func NewCOD() Method { return codMethod{} }

func (codMethod) Code() string { return entity.MethodCOD }

func (codMethod) Process(ctx context.Context, req Request) Result {
	return Result{Success: true}
}

func (codMethod) Verify(ctx context.Context, gatewayRef string) (*Verification, error) {
	return nil, apperr.New(apperr.NotSupported, "cash on delivery has no verification step")
}
