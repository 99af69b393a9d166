package handlers

import (
	"DentalCenter/models"
	"DentalCenter/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Dashboard serves the dashboard that matches the user's role.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Role == models.RoleAdmin {
		c.JSON(http.StatusOK, gin.H{"role": user.Role, "dashboard": h.service.Admin()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": user.Role, "dashboard": h.service.Patient(user.PatientID)})
}

func (h *DashboardHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.service.SelfView(user.PatientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
