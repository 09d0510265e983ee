package handlers

import (
	"errors"
	"net/http"

	"beautyboosters/models"
	"beautyboosters/services/giftcard"
	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
)

type GiftCardHandler struct {
	Service *giftcard.Service
}

func NewGiftCardHandler(svc *giftcard.Service) *GiftCardHandler {
	return &GiftCardHandler{Service: svc}
}

// CreateGiftCard handles POST /api/gift-cards.
func (h *GiftCardHandler) CreateGiftCard(c *gin.Context) {
	var req models.GiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig forespørgsel", err)
		return
	}

	dc, err := h.Service.Issue(c.Request.Context(), req)
	if err != nil {
		var ve *giftcard.ValidationError
		if errors.As(err, &ve) {
			utils.JSONError(c, http.StatusBadRequest, ve.Message, nil)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Kunne ikke oprette gavekortet", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "code": dc.Code})
}
