package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/controllers"
	"github.com/warungin/portal-api/middleware"
)

// initAuthRoutes initializes authentication routes
func initAuthRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/invite/:token", controllers.ValidateInvite)
		auth.POST("/accept-invite", controllers.AcceptInvite)

		auth.GET("/me", middleware.AuthMiddleware(), controllers.Me)
	}
}

// initAffiliatorRoutes initializes routes available to any logged-in
// portal user (affiliators see their own data)
func initAffiliatorRoutes(router *gin.RouterGroup) {
	router.GET("/earnings", middleware.AuthMiddleware(), controllers.ListEarnings)

	my := router.Group("/my")
	my.Use(middleware.AuthMiddleware())
	{
		my.GET("/tenants", controllers.MyTenants)
		my.GET("/stats", controllers.GetMyStats)
	}
}

// initBillingRoutes initializes the service-to-service redemption route.
// The billing flow of the main product calls this, never dashboard users.
func initBillingRoutes(router *gin.RouterGroup) {
	billing := router.Group("/billing")
	billing.Use(middleware.BillingServiceMiddleware())
	{
		billing.POST("/redeem", controllers.RedeemPromoCode)
	}
}
