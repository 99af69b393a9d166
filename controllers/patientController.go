package controllers

import (
	"DentalCenter/handlers"
	"DentalCenter/middlewares"
	"DentalCenter/models"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers the patient directory, incident management and
// calendar. Every route requires the Admin role.
func SetupAdminRoutes(router *gin.Engine, authorizer middlewares.Authorizer, patientHandler *handlers.PatientHandler, incidentHandler *handlers.IncidentHandler, calendarHandler *handlers.CalendarHandler) {
	adminOnly := middlewares.TokenAuthMiddleware(authorizer, models.RoleAdmin)

	admin := router.Group("/admin", adminOnly)
	{
		admin.GET("", patientHandler.GetAllPatients)
		admin.GET("/patients", patientHandler.GetAllPatients)
		admin.POST("/patients", patientHandler.CreatePatient)
		admin.GET("/patients/:patient_id", patientHandler.GetPatientByID)
		admin.PUT("/patients/:patient_id", patientHandler.UpdatePatient)
		admin.DELETE("/patients/:patient_id", patientHandler.DeletePatient)
		admin.DELETE("/patients/:patient_id/related", patientHandler.DeletePatientAndRelated)
	}

	incidents := router.Group("/incidents", adminOnly)
	{
		incidents.GET("", incidentHandler.GetAllIncidents)
		incidents.POST("", incidentHandler.CreateIncident)
		incidents.POST("/reminders", incidentHandler.SendReminders)
		incidents.GET("/:incident_id", incidentHandler.GetIncidentByID)
		incidents.PUT("/:incident_id", incidentHandler.UpdateIncident)
		incidents.DELETE("/:incident_id", incidentHandler.DeleteIncident)
	}

	router.GET("/calendar", adminOnly, calendarHandler.GetCalendar)
}
