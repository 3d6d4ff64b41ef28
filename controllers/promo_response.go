package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/models"
)

// promoCodeView shapes a promo code for API responses. full_code and
// remaining_uses are derived on read, never stored.
func promoCodeView(p *models.PromoCode) gin.H {
	view := gin.H{
		"id":               p.ID,
		"code":             p.Code,
		"referral_code":    p.ReferralCode,
		"full_code":        p.FullCode(),
		"discount_type":    p.DiscountType,
		"discount_value":   p.DiscountValue,
		"valid_from":       p.ValidFrom,
		"valid_until":      p.ValidUntil,
		"max_uses":         p.MaxUses,
		"current_uses":     p.CurrentUses,
		"applicable_plans": p.ApplicablePlans,
		"is_active":        p.IsActive,
		"created_by":       p.CreatedBy,
		"created_at":       p.CreatedAt,
		"updated_at":       p.UpdatedAt,
	}
	if left := p.RemainingUses(); left != nil {
		view["remaining_uses"] = *left
	}
	return view
}
