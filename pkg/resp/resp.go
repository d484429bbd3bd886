package resp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
}

// Error maps an apperr kind to an HTTP status. Anything without a kind is a
// plain 500.
func Error(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		ServerError(c, err)
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Forbidden:
		status = http.StatusForbidden
	case apperr.InvalidState, apperr.ValidationFailed, apperr.NotSupported, apperr.NotYetDelivered:
		status = http.StatusBadRequest
	case apperr.InvalidTransition, apperr.AlreadyExists, apperr.AlreadyRated, apperr.WindowExpired:
		status = http.StatusConflict
	case apperr.PaymentFailed:
		status = http.StatusPaymentRequired
	}

	body := gin.H{"ok": false, "error": e.Message, "kind": e.Kind}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	c.JSON(status, body)
}
