package handlers

import (
	"errors"
	"net/http"

	"beautyboosters/models"
	"beautyboosters/services/intelligence"
	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	Service *intelligence.TitleService
}

func NewTitleHandler(svc *intelligence.TitleService) *TitleHandler {
	return &TitleHandler{Service: svc}
}

// GenerateJobTitle handles POST /api/job-title.
func (h *TitleHandler) GenerateJobTitle(c *gin.Context) {
	var req models.JobTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig forespørgsel", err)
		return
	}

	title, err := h.Service.Generate(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"title": title})
	case errors.Is(err, intelligence.ErrNoServices):
		utils.JSONError(c, http.StatusBadRequest, "Vælg mindst én ydelse", err)
	case errors.Is(err, intelligence.ErrRateLimited):
		utils.JSONError(c, http.StatusTooManyRequests, "For mange forespørgsler. Prøv igen om lidt.", err)
	case errors.Is(err, intelligence.ErrBillingRequired):
		utils.JSONError(c, http.StatusPaymentRequired, "AI-kreditterne er opbrugt", err)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Kunne ikke generere en titel", err)
	}
}
