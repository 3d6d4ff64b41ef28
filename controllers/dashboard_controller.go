package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// GetDashboardStats returns the super-admin dashboard summary
func GetDashboardStats(c *gin.Context) {
	utils.LogInfo("GetDashboardStats called")

	var affiliatorCount int64
	config.DB.Model(&models.PortalUser{}).
		Where("role = ?", models.RoleAffiliator).
		Count(&affiliatorCount)

	var tenantCount int64
	config.DB.Model(&models.Tenant{}).Count(&tenantCount)

	var referredTenants int64
	config.DB.Model(&models.AffiliateTenant{}).Count(&referredTenants)

	var totalCommission float64
	config.DB.Model(&models.AffiliateEarning{}).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&totalCommission)

	var pendingCommission float64
	config.DB.Model(&models.AffiliateEarning{}).
		Where("status = ?", models.EarningStatusPending).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&pendingCommission)

	utils.Success(c, "Dashboard stats retrieved", gin.H{
		"affiliator_count":   affiliatorCount,
		"tenant_count":       tenantCount,
		"referred_tenants":   referredTenants,
		"total_commission":   totalCommission,
		"pending_commission": pendingCommission,
	})
}

// GetMyStats returns the affiliator's own dashboard summary
func GetMyStats(c *gin.Context) {
	user := c.MustGet("user").(models.PortalUser)
	utils.LogInfo("GetMyStats called by %s", user.ID)

	var tenantCount int64
	config.DB.Model(&models.AffiliateTenant{}).
		Where("portal_user_id = ?", user.ID).
		Count(&tenantCount)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var thisMonthEarnings float64
	config.DB.Model(&models.AffiliateEarning{}).
		Where("portal_user_id = ? AND created_at >= ?", user.ID, monthStart).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&thisMonthEarnings)

	utils.Success(c, "Stats retrieved", gin.H{
		"referral_code":       user.ReferralCode,
		"tenant_count":        tenantCount,
		"pending_payout":      user.PendingPayout,
		"total_earned":        user.TotalEarnings,
		"this_month_earnings": thisMonthEarnings,
	})
}
