package handlers

import (
	"DentalCenter/middlewares"
	"DentalCenter/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	service *services.CalendarService
}

func NewCalendarHandler(service *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// GetCalendar renders ?month=YYYY-MM with an optional ?day=YYYY-MM-DD selection.
func (h *CalendarHandler) GetCalendar(c *gin.Context) {
	page, err := h.service.Page(c.Query("month"), c.Query("day"))
	if err != nil {
		middlewares.HttpError(c, err.Error(), http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
