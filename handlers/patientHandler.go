package handlers

import (
	"DentalCenter/models"
	"DentalCenter/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var form models.PatientForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequestBody(c, err)
		return
	}
	patient, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient.Profile())
}

func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patient, err := h.service.GetByID(c.Param("patient_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient.Profile())
}

func (h *PatientHandler) GetAllPatients(c *gin.Context) {
	c.JSON(http.StatusOK, models.Profiles(h.service.GetAll()))
}

func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var form models.PatientForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequestBody(c, err)
		return
	}
	patient, err := h.service.Update(c.Request.Context(), c.Param("patient_id"), form)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient.Profile())
}

func (h *PatientHandler) DeletePatient(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("patient_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PatientHandler) DeletePatientAndRelated(c *gin.Context) {
	removed, err := h.service.DeletePatientAndRelated(c.Request.Context(), c.Param("patient_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient and all related records deleted", "incidentsDeleted": removed})
}
