package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{Checkout: checkout}
}

// POST /checkout
func (ctl *CheckoutController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)

	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := ctl.Checkout.Checkout(c.Request.Context(), uid, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}
