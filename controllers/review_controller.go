package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
	"github.com/eldoghry/FoodDeliveryApp-sub000/utils"
)

type ReviewController struct {
	Ratings *services.RatingService
}

func NewReviewController(ratings *services.RatingService) *ReviewController {
	return &ReviewController{Ratings: ratings}
}

// POST /orders/:id/review
func (ctl *ReviewController) Create(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	orderID, _ := strconv.Atoi(c.Param("id"))

	var in services.RateOrderIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	rev, err := ctl.Ratings.Rate(uid, uint(orderID), &in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rev)
}
