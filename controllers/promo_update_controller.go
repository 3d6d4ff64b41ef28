package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// UpdatePromoCodeRequest represents the updatable promo code fields.
// Pointer fields distinguish "not sent" from zero values.
type UpdatePromoCodeRequest struct {
	Code            *string  `json:"code"`
	ReferralCode    *string  `json:"referral_code"`
	DiscountType    *string  `json:"discount_type"`
	DiscountValue   *float64 `json:"discount_value"`
	ValidFrom       *string  `json:"valid_from"`
	ValidUntil      *string  `json:"valid_until"`
	MaxUses         *int     `json:"max_uses"`
	ApplicablePlans *string  `json:"applicable_plans"`
	IsActive        *bool    `json:"is_active"`
}

// mergePromoUpdate folds an update request into a copy of the stored
// record. Immutability is enforced first: the code suffix never changes,
// and the referral prefix is permanent once set — a request that tries
// to rewrite either gets an ImmutableFieldError before any other
// validation runs. The usage counter is owned by the redemption path and
// is never part of the merge. Cross-field invariants are re-validated
// against the merged result, so a partial update cannot leave an
// inconsistent whole.
func mergePromoUpdate(stored models.PromoCode, req UpdatePromoCodeRequest) (models.PromoCode, utils.FieldValidationErrors, *utils.ImmutableFieldError) {
	if req.Code != nil && utils.NormalizePromoSuffix(*req.Code) != stored.Code {
		return stored, nil, &utils.ImmutableFieldError{Field: "code"}
	}
	if req.ReferralCode != nil && stored.HasReferralCode() && *req.ReferralCode != stored.ReferralCode {
		return stored, nil, &utils.ImmutableFieldError{Field: "referral_code"}
	}

	merged := stored
	var errs utils.FieldValidationErrors

	if req.ReferralCode != nil && !stored.HasReferralCode() && *req.ReferralCode != "" {
		merged.ReferralCode = *req.ReferralCode
	}
	if req.DiscountType != nil {
		merged.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		merged.DiscountValue = *req.DiscountValue
	}
	if req.ValidFrom != nil {
		t, err := parsePromoDate(*req.ValidFrom)
		if err != nil {
			errs.Add("valid_from", "must be a date in YYYY-MM-DD format")
		} else {
			merged.ValidFrom = t
		}
	}
	if req.ValidUntil != nil {
		t, err := parsePromoDate(*req.ValidUntil)
		if err != nil {
			errs.Add("valid_until", "must be a date in YYYY-MM-DD format")
		} else {
			merged.ValidUntil = endOfDay(t)
		}
	}
	if req.MaxUses != nil {
		merged.MaxUses = req.MaxUses
	}
	if req.ApplicablePlans != nil {
		merged.ApplicablePlans = *req.ApplicablePlans
	}
	if req.IsActive != nil {
		merged.IsActive = *req.IsActive
	}

	errs = append(errs, utils.ValidatePromoFields(
		merged.Code, merged.DiscountType, merged.DiscountValue,
		merged.ValidFrom, merged.ValidUntil, merged.MaxUses)...)

	return merged, errs, nil
}

// UpdatePromoCode updates a promo code within its immutability rules.
// The write excludes current_uses: a redemption landing between this
// handler's read and its write must not be erased by a stale counter.
func UpdatePromoCode(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("UpdatePromoCode called for %s", id)

	var req UpdatePromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var promo models.PromoCode
	if err := config.DB.First(&promo, "id = ?", id).Error; err != nil {
		utils.LogError("Promo code not found: %s", id)
		utils.NotFound(c, "Promo code not found")
		return
	}

	merged, errs, immErr := mergePromoUpdate(promo, req)
	if immErr != nil {
		utils.LogError("Attempt to change %s on promo %s", immErr.Field, id)
		utils.BadRequest(c, immErr.Error(), gin.H{"field": immErr.Field})
		return
	}

	settingReferral := merged.ReferralCode != promo.ReferralCode
	if settingReferral {
		var affiliator models.PortalUser
		if err := config.DB.Where("referral_code = ? AND role = ? AND is_active = ?",
			merged.ReferralCode, models.RoleAffiliator, true).First(&affiliator).Error; err != nil {
			errs.Add("referral_code", "must reference an existing active affiliator")
		}
	}

	if errs.HasErrors() {
		utils.LogError("Promo code update validation failed for %s: %v", id, errs)
		utils.ValidationFailed(c, errs)
		return
	}

	if settingReferral {
		// The (referral_code, code) pair must stay unique after the
		// prefix is attached.
		var clash models.PromoCode
		if err := config.DB.Where("referral_code = ? AND code = ? AND id <> ?",
			merged.ReferralCode, merged.Code, promo.ID).First(&clash).Error; err == nil {
			utils.Conflict(c, "Promo code already exists", nil)
			return
		}
	}

	if err := config.DB.Omit("current_uses").Save(&merged).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			utils.LogError("Promo code already exists: %s%s", merged.ReferralCode, merged.Code)
			utils.Conflict(c, "Promo code already exists", nil)
			return
		}
		utils.LogError("Failed to update promo code %s: %v", id, err)
		utils.InternalServerError(c, "Failed to update promo code", nil)
		return
	}

	utils.LogInfo("Promo code %s updated", id)
	utils.Success(c, "Promo code updated", promoCodeView(&merged))
}

// DeactivatePromoCode soft-deactivates a promo code. Deactivating an
// already-inactive code is not an error.
func DeactivatePromoCode(c *gin.Context) {
	id := c.Param("id")
	utils.LogInfo("DeactivatePromoCode called for %s", id)

	var promo models.PromoCode
	if err := config.DB.First(&promo, "id = ?", id).Error; err != nil {
		utils.LogError("Promo code not found: %s", id)
		utils.NotFound(c, "Promo code not found")
		return
	}

	if promo.IsActive {
		// Single-column update; the flag flip must not write back any
		// other field read before it.
		if err := config.DB.Model(&promo).Update("is_active", false).Error; err != nil {
			utils.LogError("Failed to deactivate promo code %s: %v", id, err)
			utils.InternalServerError(c, "Failed to deactivate promo code", nil)
			return
		}
		promo.IsActive = false
	}

	utils.LogInfo("Promo code %s deactivated", id)
	utils.Success(c, "Promo code deactivated", promoCodeView(&promo))
}
