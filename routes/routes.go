package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	portal := router.Group("/portal")
	{
		initAuthRoutes(portal)
		initAdminRoutes(portal)
		initAffiliatorRoutes(portal)
		initBillingRoutes(portal)
	}

	return router
}
