package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// ListAffiliators returns all affiliators with their referred tenant counts
func ListAffiliators(c *gin.Context) {
	utils.LogInfo("ListAffiliators called")

	var affiliators []models.PortalUser
	if err := config.DB.Where("role = ?", models.RoleAffiliator).
		Order("created_at DESC").
		Find(&affiliators).Error; err != nil {
		utils.LogError("Failed to fetch affiliators: %v", err)
		utils.InternalServerError(c, "Failed to fetch affiliators", nil)
		return
	}

	type affiliatorRow struct {
		models.PortalUser
		TenantCount int64 `json:"tenant_count"`
	}

	rows := make([]affiliatorRow, 0, len(affiliators))
	for _, a := range affiliators {
		var count int64
		config.DB.Model(&models.AffiliateTenant{}).
			Where("portal_user_id = ?", a.ID).
			Count(&count)
		rows = append(rows, affiliatorRow{PortalUser: a, TenantCount: count})
	}

	utils.Success(c, "Affiliators retrieved", rows)
}

// GetAffiliator returns one affiliator with tenant count and total commission
func GetAffiliator(c *gin.Context) {
	id := c.Param("id")

	var affiliator models.PortalUser
	if err := config.DB.Where("id = ? AND role = ?", id, models.RoleAffiliator).
		First(&affiliator).Error; err != nil {
		utils.LogError("Affiliator not found: %s", id)
		utils.NotFound(c, "Affiliator not found")
		return
	}

	var tenantCount int64
	config.DB.Model(&models.AffiliateTenant{}).
		Where("portal_user_id = ?", affiliator.ID).
		Count(&tenantCount)

	var totalCommission float64
	config.DB.Model(&models.AffiliateEarning{}).
		Where("portal_user_id = ?", affiliator.ID).
		Select("COALESCE(SUM(commission_amount), 0)").
		Scan(&totalCommission)

	utils.Success(c, "Affiliator retrieved", gin.H{
		"affiliator":       affiliator,
		"tenant_count":     tenantCount,
		"total_commission": totalCommission,
	})
}

// UpdateAffiliatorRequest represents the updatable affiliator fields.
// The referral code is deliberately absent: promo codes and tenant
// attribution hang off it, so it can never change.
type UpdateAffiliatorRequest struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	BankName    *string `json:"bank_name"`
	BankAccount *string `json:"bank_account"`
	BankHolder  *string `json:"bank_holder"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateAffiliator updates an affiliator's profile
func UpdateAffiliator(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("UpdateAffiliator called for %s", id)

	var req UpdateAffiliatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var affiliator models.PortalUser
	if err := config.DB.Where("id = ? AND role = ?", id, models.RoleAffiliator).
		First(&affiliator).Error; err != nil {
		utils.NotFound(c, "Affiliator not found")
		return
	}

	if req.Name != nil {
		if valid, msg := utils.ValidateName(*req.Name); !valid {
			utils.BadRequest(c, "Invalid name", msg)
			return
		}
		affiliator.Name = *req.Name
	}
	if req.Phone != nil {
		valid, formatted := utils.ValidatePhone(*req.Phone)
		if !valid {
			utils.BadRequest(c, "Invalid phone number", formatted)
			return
		}
		affiliator.Phone = formatted
	}
	if req.BankName != nil {
		affiliator.BankName = *req.BankName
	}
	if req.BankAccount != nil {
		affiliator.BankAccount = *req.BankAccount
	}
	if req.BankHolder != nil {
		affiliator.BankHolder = *req.BankHolder
	}
	if req.IsActive != nil {
		affiliator.IsActive = *req.IsActive
	}

	if err := config.DB.Save(&affiliator).Error; err != nil {
		utils.LogError("Failed to update affiliator %s: %v", id, err)
		utils.InternalServerError(c, "Failed to update affiliator", nil)
		return
	}

	utils.LogInfo("Affiliator %s updated", id)
	utils.Success(c, "Affiliator updated", affiliator)
}

// DeleteAffiliator soft-deletes an affiliator account. Earnings and
// attribution records are kept for reporting.
func DeleteAffiliator(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("DeleteAffiliator called for %s", id)

	var affiliator models.PortalUser
	if err := config.DB.Where("id = ? AND role = ?", id, models.RoleAffiliator).
		First(&affiliator).Error; err != nil {
		utils.NotFound(c, "Affiliator not found")
		return
	}

	if err := config.DB.Delete(&affiliator).Error; err != nil {
		utils.LogError("Failed to delete affiliator %s: %v", id, err)
		utils.InternalServerError(c, "Failed to delete affiliator", nil)
		return
	}

	utils.LogInfo("Affiliator %s deleted", id)
	utils.Success(c, "Affiliator deleted", nil)
}
