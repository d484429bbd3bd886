package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type OrderController struct {
	Orders       *services.OrderService
	Transactions *services.TransactionService
}

func NewOrderController(orders *services.OrderService, txns *services.TransactionService) *OrderController {
	return &OrderController{Orders: orders, Transactions: txns}
}

// GET /orders
func (ctl *OrderController) ListForMe(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.Orders.ListForUser(uid, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (ctl *OrderController) Detail(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := ctl.Orders.DetailForUser(uid, uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

type cancelReq struct {
	Reason string `json:"reason"`
}

// POST /orders/:id/cancel — customer cancellation, subject to the pending
// grace window.
func (ctl *OrderController) Cancel(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))
	var req cancelReq
	_ = c.ShouldBindJSON(&req)
	if err := ctl.Orders.CancelByCustomer(uid, uint(id), req.Reason); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"canceled": true})
}

// GET /orders/:id/transaction
func (ctl *OrderController) Ledger(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := ctl.Transactions.LedgerForOrder(uid, uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}
