package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// CreatePromoCodeRequest represents the request body for creating a promo code
type CreatePromoCodeRequest struct {
	Code            string  `json:"code" binding:"required"`
	ReferralCode    string  `json:"referral_code"`
	DiscountType    string  `json:"discount_type" binding:"required"`
	DiscountValue   float64 `json:"discount_value" binding:"required"`
	ValidFrom       string  `json:"valid_from" binding:"required"`
	ValidUntil      string  `json:"valid_until" binding:"required"`
	MaxUses         *int    `json:"max_uses"`
	ApplicablePlans string  `json:"applicable_plans"`
}

// parsePromoDate accepts a bare date or a full timestamp.
func parsePromoDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// endOfDay pushes a bare-date boundary to the last instant of that day,
// so valid_until is inclusive.
func endOfDay(t time.Time) time.Time {
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// CreatePromoCode creates a new promo code
func CreatePromoCode(c *gin.Context) {
	utils.LogInfo("CreatePromoCode called")

	admin := c.MustGet("user").(models.PortalUser)

	var req CreatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Processing promo code creation with suffix: %s", req.Code)

	suffix := utils.NormalizePromoSuffix(req.Code)

	var errs utils.FieldValidationErrors

	validFrom, errFrom := parsePromoDate(req.ValidFrom)
	if errFrom != nil {
		errs.Add("valid_from", "must be a date in YYYY-MM-DD format")
	}
	validUntil, errUntil := parsePromoDate(req.ValidUntil)
	if errUntil != nil {
		errs.Add("valid_until", "must be a date in YYYY-MM-DD format")
	} else {
		validUntil = endOfDay(validUntil)
	}

	errs = append(errs, utils.ValidatePromoFields(
		suffix, req.DiscountType, req.DiscountValue, validFrom, validUntil, req.MaxUses)...)

	// The referral prefix must belong to an existing active affiliator.
	if req.ReferralCode != "" {
		var affiliator models.PortalUser
		if err := config.DB.Where("referral_code = ? AND role = ? AND is_active = ?",
			req.ReferralCode, models.RoleAffiliator, true).First(&affiliator).Error; err != nil {
			errs.Add("referral_code", "must reference an existing active affiliator")
		}
	}

	if errs.HasErrors() {
		utils.LogError("Promo code validation failed: %v", errs)
		utils.ValidationFailed(c, errs)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Uniqueness is scoped to the (referral_code, code) pair; the same
	// suffix may exist under different referral prefixes.
	var existing models.PromoCode
	if err := tx.Where("referral_code = ? AND code = ?", req.ReferralCode, suffix).
		First(&existing).Error; err == nil {
		tx.Rollback()
		utils.LogError("Promo code already exists: %s%s", req.ReferralCode, suffix)
		utils.Conflict(c, "Promo code already exists", nil)
		return
	}

	promo := models.PromoCode{
		Code:            suffix,
		ReferralCode:    req.ReferralCode,
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		ValidFrom:       validFrom,
		ValidUntil:      validUntil,
		MaxUses:         req.MaxUses,
		CurrentUses:     0,
		ApplicablePlans: req.ApplicablePlans,
		IsActive:        true,
		CreatedBy:       admin.ID,
	}

	if err := tx.Create(&promo).Error; err != nil {
		tx.Rollback()
		// Two concurrent creates can both pass the pre-check; the loser
		// hits the composite unique index instead.
		if utils.IsDuplicateKeyError(err) {
			utils.LogError("Promo code already exists: %s%s", req.ReferralCode, suffix)
			utils.Conflict(c, "Promo code already exists", nil)
			return
		}
		utils.LogError("Failed to create promo code: %v", err)
		utils.InternalServerError(c, "Failed to create promo code", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Promo code %s created with id %s", promo.FullCode(), promo.ID)
	utils.Created(c, "Promo code created", promoCodeView(&promo))
}
