package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type AddressController struct {
	UserRepo *repository.UserRepository
}

func NewAddressController(userRepo *repository.UserRepository) *AddressController {
	return &AddressController{UserRepo: userRepo}
}

// GET /addresses
func (ctl *AddressController) List(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	items, err := ctl.UserRepo.ListAddresses(uid)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type createAddressReq struct {
	Label string `json:"label"`
	Line1 string `json:"line1" binding:"required"`
	City  string `json:"city" binding:"required"`
	Phone string `json:"phone"`
}

// POST /addresses
func (ctl *AddressController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	var req createAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a := &entity.Address{
		UserID: uid,
		Label:  req.Label,
		Line1:  req.Line1,
		City:   req.City,
		Phone:  req.Phone,
	}
	if err := ctl.UserRepo.CreateAddress(a); err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, a)
}
