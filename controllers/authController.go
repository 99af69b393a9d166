package controllers

import (
	"DentalCenter/handlers"
	"DentalCenter/middlewares"
	"DentalCenter/models"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler    *handlers.AuthHandler
	Authorizer middlewares.Authorizer
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler, authorizer middlewares.Authorizer) *AuthController {
	return &AuthController{
		Handler:    authHandler,
		Authorizer: authorizer,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	router.GET(middlewares.LoginPath, ac.Handler.LoginPage)
	router.POST(middlewares.LoginPath, ac.Handler.Login)

	// Protected routes: any signed-in user
	authGroup := router.Group("/").Use(middlewares.TokenAuthMiddleware(ac.Authorizer))
	{
		authGroup.POST("/logout", ac.Handler.Logout)
		authGroup.GET("/session", ac.Handler.Session)
	}

	// Patient routes
	patientGroup := router.Group("/me").Use(middlewares.TokenAuthMiddleware(ac.Authorizer, models.RolePatient))
	{
		patientGroup.PUT("/password", ac.Handler.ChangePassword)
	}
}
