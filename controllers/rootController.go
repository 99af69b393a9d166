package controllers

import (
	"DentalCenter/handlers"
	"DentalCenter/middlewares"
	"DentalCenter/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// healthHandler reports liveness.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SetupRootRoute registers the role-dependent dashboard, the patient self
// view and the operational endpoints.
func SetupRootRoute(router *gin.Engine, authorizer middlewares.Authorizer, dashboardHandler *handlers.DashboardHandler, metrics *middlewares.Metrics) {
	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	router.GET("/", middlewares.TokenAuthMiddleware(authorizer), dashboardHandler.Dashboard)
	router.GET("/me", middlewares.TokenAuthMiddleware(authorizer, models.RolePatient), dashboardHandler.Me)
}
