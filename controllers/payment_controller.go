package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/resp"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
)

type PaymentController struct {
	Transactions *services.TransactionService
}

func NewPaymentController(txns *services.TransactionService) *PaymentController {
	return &PaymentController{Transactions: txns}
}

// POST /webhooks/payment — provider callback. Must answer 200 for anything
// already handled so the provider stops retrying; a transient verify failure
// answers 5xx to request a retry.
func (ctl *PaymentController) Webhook(c *gin.Context) {
	var ev services.WebhookEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	log.Printf("payment webhook: ref=%s event=%s", ev.ProviderOrderID, ev.EventType)

	if err := ctl.Transactions.HandleWebhook(c.Request.Context(), &ev); err != nil {
		if apperr.KindOf(err) != "" {
			resp.Error(c, err)
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"received": true})
}
