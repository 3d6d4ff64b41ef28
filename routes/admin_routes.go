package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/controllers"
	"github.com/warungin/portal-api/middleware"
)

// initAdminRoutes initializes all super-admin routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Affiliator management
		admin.POST("/affiliators/invite", controllers.InviteAffiliator)
		admin.GET("/affiliators", controllers.ListAffiliators)
		admin.GET("/affiliators/:id", controllers.GetAffiliator)
		admin.PUT("/affiliators/:id", controllers.UpdateAffiliator)
		admin.DELETE("/affiliators/:id", controllers.DeleteAffiliator)

		// Tenant attribution
		admin.GET("/tenants", controllers.ListTenants)
		admin.POST("/tenants/:id/assign-affiliate", controllers.AssignAffiliate)

		// Dashboard and payouts
		admin.GET("/dashboard", controllers.GetDashboardStats)
		admin.POST("/payouts", controllers.RecordPayout)
		admin.GET("/payouts", controllers.ListPayouts)
		admin.GET("/earnings/export/excel", controllers.DownloadEarningsReportExcel)
		admin.GET("/earnings/export/pdf", controllers.DownloadEarningsReportPDF)

		// Promo code management
		admin.POST("/promo-codes", controllers.CreatePromoCode)
		admin.GET("/promo-codes", controllers.ListPromoCodes)
		admin.GET("/promo-codes/:id", controllers.GetPromoCode)
		admin.PUT("/promo-codes/:id", controllers.UpdatePromoCode)
		admin.DELETE("/promo-codes/:id", controllers.DeactivatePromoCode)
		admin.GET("/promo-codes/:id/usages", controllers.ListPromoCodeUsages)
	}
}
