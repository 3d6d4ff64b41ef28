package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// ListTenants returns all tenants with their affiliator attribution
func ListTenants(c *gin.Context) {
	utils.LogInfo("ListTenants called")

	var tenants []models.Tenant
	if err := config.DB.Order("created_at DESC").Find(&tenants).Error; err != nil {
		utils.LogError("Failed to fetch tenants: %v", err)
		utils.InternalServerError(c, "Failed to fetch tenants", nil)
		return
	}

	var links []models.AffiliateTenant
	if err := config.DB.Preload("PortalUser").Find(&links).Error; err != nil {
		utils.LogError("Failed to fetch tenant attributions: %v", err)
		utils.InternalServerError(c, "Failed to fetch tenant attributions", nil)
		return
	}

	attribution := make(map[string]*models.AffiliateTenant, len(links))
	for i := range links {
		attribution[links[i].TenantID] = &links[i]
	}

	type tenantRow struct {
		models.Tenant
		AffiliatorID   string `json:"affiliator_id,omitempty"`
		AffiliatorName string `json:"affiliator_name,omitempty"`
	}

	rows := make([]tenantRow, 0, len(tenants))
	for _, t := range tenants {
		row := tenantRow{Tenant: t}
		if link, ok := attribution[t.ID]; ok && link.PortalUser != nil {
			row.AffiliatorID = link.PortalUserID
			row.AffiliatorName = link.PortalUser.Name
		}
		rows = append(rows, row)
	}

	utils.Success(c, "Tenants retrieved", rows)
}

// AssignAffiliateRequest represents the request body for attributing a tenant
type AssignAffiliateRequest struct {
	PortalUserID string `json:"portal_user_id" binding:"required"`
}

// AssignAffiliate attributes a tenant to an affiliator. Reassignment
// replaces the existing attribution.
func AssignAffiliate(c *gin.Context) {
	tenantID := c.Param("id")
	utils.LogInfo("AssignAffiliate called for tenant %s", tenantID)

	var req AssignAffiliateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, "id = ?", tenantID).Error; err != nil {
		utils.NotFound(c, "Tenant not found")
		return
	}

	var affiliator models.PortalUser
	if err := config.DB.Where("id = ? AND role = ?", req.PortalUserID, models.RoleAffiliator).
		First(&affiliator).Error; err != nil {
		utils.NotFound(c, "Affiliator not found")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	if err := tx.Where("tenant_id = ?", tenantID).Delete(&models.AffiliateTenant{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear existing attribution for tenant %s: %v", tenantID, err)
		utils.InternalServerError(c, "Failed to assign affiliate", nil)
		return
	}

	link := models.AffiliateTenant{
		PortalUserID: affiliator.ID,
		TenantID:     tenant.ID,
	}
	if err := tx.Create(&link).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create attribution for tenant %s: %v", tenantID, err)
		utils.InternalServerError(c, "Failed to assign affiliate", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Tenant %s attributed to affiliator %s", tenantID, affiliator.ID)
	utils.Success(c, "Affiliate assigned", nil)
}

// MyTenants returns the tenants referred by the authenticated affiliator
func MyTenants(c *gin.Context) {
	user := c.MustGet("user").(models.PortalUser)
	utils.LogInfo("MyTenants called by %s", user.ID)

	var links []models.AffiliateTenant
	if err := config.DB.Where("portal_user_id = ?", user.ID).
		Preload("Tenant").
		Order("created_at DESC").
		Find(&links).Error; err != nil {
		utils.LogError("Failed to fetch tenants for affiliator %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch tenants", nil)
		return
	}

	utils.Success(c, "Tenants retrieved", links)
}
