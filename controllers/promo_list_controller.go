package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// ListPromoCodes returns promo codes, optionally filtered by the
// administrative active flag. The filter is about is_active only; a code
// can be "active" here and still outside its date window.
func ListPromoCodes(c *gin.Context) {
	utils.LogInfo("ListPromoCodes called")

	status := c.Query("status")
	switch status {
	case "", "active", "inactive":
	default:
		utils.BadRequest(c, "Invalid status filter", "status must be active or inactive")
		return
	}

	filter := func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("is_active = ?", status == "active")
	}

	page, limit := utils.GetPaginationParams(c)

	var total int64
	filter(config.DB.Model(&models.PromoCode{})).Count(&total)

	var promos []models.PromoCode
	if err := filter(config.DB.Model(&models.PromoCode{})).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&promos).Error; err != nil {
		utils.LogError("Failed to fetch promo codes: %v", err)
		utils.InternalServerError(c, "Failed to fetch promo codes", nil)
		return
	}

	views := make([]gin.H, 0, len(promos))
	for i := range promos {
		views = append(views, promoCodeView(&promos[i]))
	}

	utils.Success(c, "Promo codes retrieved", gin.H{
		"promo_codes": views,
		"total":       total,
		"page":        page,
		"per_page":    limit,
	})
}

// GetPromoCode returns one promo code by id, including its usage count
func GetPromoCode(c *gin.Context) {
	id := c.Param("id")

	var promo models.PromoCode
	if err := config.DB.First(&promo, "id = ?", id).Error; err != nil {
		utils.LogError("Promo code not found: %s", id)
		utils.NotFound(c, "Promo code not found")
		return
	}

	utils.Success(c, "Promo code retrieved", promoCodeView(&promo))
}
