package handlers

import (
	"DentalCenter/models"
	"DentalCenter/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IncidentHandler struct {
	service   *services.IncidentService
	reminders *services.ReminderService
}

func NewIncidentHandler(service *services.IncidentService, reminders *services.ReminderService) *IncidentHandler {
	return &IncidentHandler{service: service, reminders: reminders}
}

// GetAllIncidents accepts optional patientId and status filters.
func (h *IncidentHandler) GetAllIncidents(c *gin.Context) {
	filter := services.IncidentFilter{
		PatientID: c.Query("patientId"),
		Status:    models.IncidentStatus(c.Query("status")),
	}
	c.JSON(http.StatusOK, h.service.GetAll(filter))
}

func (h *IncidentHandler) GetIncidentByID(c *gin.Context) {
	incident, err := h.service.GetByID(c.Param("incident_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) CreateIncident(c *gin.Context) {
	var form models.IncidentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequestBody(c, err)
		return
	}
	incident, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, incident)
}

func (h *IncidentHandler) UpdateIncident(c *gin.Context) {
	var form models.IncidentForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequestBody(c, err)
		return
	}
	incident, err := h.service.Update(c.Request.Context(), c.Param("incident_id"), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, incident)
}

func (h *IncidentHandler) DeleteIncident(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("incident_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *IncidentHandler) SendReminders(c *gin.Context) {
	result, err := h.reminders.SendUpcoming(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
