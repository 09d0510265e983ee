package handlers

import (
	"net/http"

	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	PublishableKey string
}

func NewPaymentHandler(publishableKey string) *PaymentHandler {
	return &PaymentHandler{PublishableKey: publishableKey}
}

// GetPublishableKey handles GET|POST /api/stripe/publishable-key.
func (h *PaymentHandler) GetPublishableKey(c *gin.Context) {
	if h.PublishableKey == "" {
		utils.JSONError(c, http.StatusInternalServerError, "Stripe er ikke konfigureret", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"publishableKey": h.PublishableKey})
}
