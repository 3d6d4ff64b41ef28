package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// ListPromoCodeUsages returns the redemption history of a promo code,
// newest first
func ListPromoCodeUsages(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("ListPromoCodeUsages called for %s", id)

	var promo models.PromoCode
	if err := config.DB.First(&promo, "id = ?", id).Error; err != nil {
		utils.LogError("Promo code not found: %s", id)
		utils.NotFound(c, "Promo code not found")
		return
	}

	page, limit := utils.GetPaginationParams(c)

	var total int64
	config.DB.Model(&models.PromoCodeUsage{}).
		Where("promo_code_id = ?", promo.ID).
		Count(&total)

	var usages []models.PromoCodeUsage
	if err := config.DB.Where("promo_code_id = ?", promo.ID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&usages).Error; err != nil {
		utils.LogError("Failed to fetch usages for promo %s: %v", id, err)
		utils.InternalServerError(c, "Failed to fetch usages", nil)
		return
	}

	utils.Success(c, "Usages retrieved", gin.H{
		"promo_code": promoCodeView(&promo),
		"usages":     usages,
		"total":      total,
		"page":       page,
		"per_page":   limit,
	})
}
