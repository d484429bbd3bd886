package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// GET /cart
func (ctl *CartController) Get(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	cart, subtotal, err := ctl.Carts.Get(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "subtotal": subtotal})
}

// POST /cart/items
func (ctl *CartController) AddItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	var in services.AddToCartIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Carts.Add(uid, &in); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{"added": true})
}

type updateQtyReq struct {
	Qty int `json:"qty"`
}

// PATCH /cart/items/:id
func (ctl *CartController) UpdateQty(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, _ := strconv.Atoi(c.Param("id"))
	var req updateQtyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.Carts.UpdateQty(uid, uint(itemID), req.Qty); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"updated": true})
}

// DELETE /cart/items/:id
func (ctl *CartController) RemoveItem(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	itemID, _ := strconv.Atoi(c.Param("id"))
	if err := ctl.Carts.RemoveItem(uid, uint(itemID)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": true})
}

// DELETE /cart
func (ctl *CartController) Clear(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if err := ctl.Carts.Clear(uid); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
