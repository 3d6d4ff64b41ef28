package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// ListEarnings returns commission entries. Super admins see every
// affiliator's earnings; affiliators see only their own.
func ListEarnings(c *gin.Context) {
	user := c.MustGet("user").(models.PortalUser)
	utils.LogInfo("ListEarnings called by %s", user.ID)

	query := config.DB.Model(&models.AffiliateEarning{}).
		Preload("Tenant").
		Preload("Affiliator").
		Order("created_at DESC")
	if !user.IsAdmin() {
		query = query.Where("portal_user_id = ?", user.ID)
	}

	var earnings []models.AffiliateEarning
	if err := query.Find(&earnings).Error; err != nil {
		utils.LogError("Failed to fetch earnings: %v", err)
		utils.InternalServerError(c, "Failed to fetch earnings", nil)
		return
	}

	var totalPending, totalPaid float64
	for _, e := range earnings {
		switch e.Status {
		case models.EarningStatusPending:
			totalPending += e.CommissionAmount
		case models.EarningStatusPaid:
			totalPaid += e.CommissionAmount
		}
	}

	utils.Success(c, "Earnings retrieved", gin.H{
		"earnings":      earnings,
		"total_pending": totalPending,
		"total_paid":    totalPaid,
	})
}
