package handlers

import (
	"errors"
	"net/http"

	"beautyboosters/models"
	"beautyboosters/services/schedule"
	"beautyboosters/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	Service *schedule.Service
}

func NewScheduleHandler(svc *schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// GetGrid handles GET /api/schedule/grid?date=YYYY-MM-DD.
func (h *ScheduleHandler) GetGrid(c *gin.Context) {
	date := c.Query("date")
	if _, err := schedule.ParseDate(date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig dato, brug formatet ÅÅÅÅ-MM-DD", err)
		return
	}

	grid, err := h.Service.Grid(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Kunne ikke hente kalenderen", err)
		return
	}
	c.JSON(http.StatusOK, grid)
}

// Drop handles POST /api/schedule/drop.
func (h *ScheduleHandler) Drop(c *gin.Context) {
	var req models.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig forespørgsel", err)
		return
	}
	if _, err := schedule.ParseDate(req.Date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Ugyldig dato, brug formatet ÅÅÅÅ-MM-DD", err)
		return
	}

	result, err := h.Service.Drop(c.Request.Context(), req)
	if err != nil {
		status, msg := dropError(err)
		utils.JSONError(c, status, msg, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func dropError(err error) (int, string) {
	switch {
	case errors.Is(err, schedule.ErrNoDropTarget):
		return http.StatusUnprocessableEntity, "Slip opgaven på en celle i kalenderen"
	case errors.Is(err, schedule.ErrUnknownToken), errors.Is(err, schedule.ErrSourceNotFound):
		return http.StatusNotFound, "Tidsrummet findes ikke"
	case errors.Is(err, schedule.ErrSourceHasNoJob):
		return http.StatusUnprocessableEntity, "Der er ingen opgave at flytte"
	case errors.Is(err, schedule.ErrTargetNotFound):
		return http.StatusUnprocessableEntity, "Boosteren har ingen tilgængelighed på dette tidspunkt"
	case errors.Is(err, schedule.ErrSameSlot):
		return http.StatusUnprocessableEntity, "Opgaven ligger allerede her"
	case errors.Is(err, schedule.ErrTargetUnavailable):
		return http.StatusConflict, "Tidsrummet er ikke ledigt"
	}
	return http.StatusInternalServerError, "Kunne ikke flytte opgaven"
}
