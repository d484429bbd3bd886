package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type OwnerOrderController struct {
	Orders *services.OrderService
}

func NewOwnerOrderController(orders *services.OrderService) *OwnerOrderController {
	return &OwnerOrderController{Orders: orders}
}

// GET /owner/restaurants/:id/orders
func (ctl *OwnerOrderController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Param("id"))

	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		v := entity.OrderStatus(s)
		status = &v
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	out, err := ctl.Orders.ListForRestaurant(uid, uint(restID), status, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /owner/restaurants/:id/orders/:oid
func (ctl *OwnerOrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Param("id"))
	orderID, _ := strconv.Atoi(c.Param("oid"))

	out, err := ctl.Orders.DetailForRestaurant(uid, uint(restID), uint(orderID))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /owner/orders/:id/accept
func (ctl *OwnerOrderController) Accept(c *gin.Context) {
	ctl.transition(c, ctl.Orders.OwnerAccept)
}

// POST /owner/orders/:id/handoff
func (ctl *OwnerOrderController) Handoff(c *gin.Context) {
	ctl.transition(c, ctl.Orders.OwnerHandoff)
}

// POST /owner/orders/:id/complete
func (ctl *OwnerOrderController) Complete(c *gin.Context) {
	ctl.transition(c, ctl.Orders.OwnerComplete)
}

type ownerCancelReq struct {
	Reason string `json:"reason"`
}

// POST /owner/orders/:id/cancel
func (ctl *OwnerOrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	orderID, _ := strconv.Atoi(c.Param("id"))
	var req ownerCancelReq
	_ = c.ShouldBindJSON(&req)
	if err := ctl.Orders.OwnerCancel(uid, uint(orderID), req.Reason); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"canceled": true})
}

func (ctl *OwnerOrderController) transition(c *gin.Context, fn func(ownerID, orderID uint) error) {
	uid := utils.CurrentUserID(c)
	orderID, _ := strconv.Atoi(c.Param("id"))
	if err := fn(uid, uint(orderID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}
