package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type RestaurantController struct {
	RestRepo *repository.RestaurantRepository
	MenuRepo *repository.MenuRepository
}

func NewRestaurantController(restRepo *repository.RestaurantRepository, menuRepo *repository.MenuRepository) *RestaurantController {
	return &RestaurantController{RestRepo: restRepo, MenuRepo: menuRepo}
}

// GET /restaurants
func (ctl *RestaurantController) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := ctl.RestRepo.List(limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /restaurants/:id
func (ctl *RestaurantController) Detail(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))
	rest, err := ctl.RestRepo.Get(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	menus, err := ctl.MenuRepo.ListForRestaurant(rest.ID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"restaurant": rest, "menus": menus})
}

type setOpenReq struct {
	IsOpen *bool `json:"isOpen" binding:"required"`
}

// PATCH /owner/restaurants/:id/open
func (ctl *RestaurantController) SetOpen(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	restID, _ := strconv.Atoi(c.Param("id"))

	ok, err := ctl.RestRepo.IsOwnedBy(uint(restID), uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if !ok {
		resp.Error(c, apperr.New(apperr.Forbidden, "not the restaurant owner"))
		return
	}

	var req setOpenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := ctl.RestRepo.SetOpen(uint(restID), *req.IsOpen); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"isOpen": *req.IsOpen})
}
