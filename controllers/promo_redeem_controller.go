package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// RedeemPromoCodeRequest represents the request body sent by the billing
// service when a customer applies a promo code to an invoice.
type RedeemPromoCodeRequest struct {
	FullCode  string  `json:"full_code" binding:"required"`
	TenantID  string  `json:"tenant_id" binding:"required"`
	InvoiceID string  `json:"invoice_id" binding:"required"`
	PlanID    string  `json:"plan_id" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// RedeemPromoCode applies a promo code to an invoice. The usage counter
// is bumped with a conditional update inside the transaction, so two
// simultaneous redemptions can never both take the last remaining slot;
// the per-code lock just keeps attempts on this node from piling up on
// the database.
func RedeemPromoCode(c *gin.Context) {
	utils.LogInfo("RedeemPromoCode called")

	var req RedeemPromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	utils.LogInfo("Redemption attempt for code %s on invoice %s", req.FullCode, req.InvoiceID)

	// The customer types the composed string; match it against the
	// stored prefix+suffix pair.
	var promo models.PromoCode
	if err := config.DB.Where("referral_code || code = ?", req.FullCode).
		First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.LogError("Promo code not found: %s", req.FullCode)
			utils.NotFound(c, "Promo code not found")
			return
		}
		utils.LogError("Failed to look up promo code: %v", err)
		utils.InternalServerError(c, "Failed to look up promo code", nil)
		return
	}

	utils.PromoCodeLocks.Lock(promo.ID)
	defer utils.PromoCodeLocks.Unlock(promo.ID)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	// Re-read inside the transaction; the counter may have moved since
	// the lookup.
	if err := tx.First(&promo, "id = ?", promo.ID).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to re-read promo code %s: %v", promo.ID, err)
		utils.InternalServerError(c, "Failed to look up promo code", nil)
		return
	}

	now := time.Now()
	if validity := utils.CheckPromoValidity(&promo, now); validity != utils.PromoValid {
		tx.Rollback()
		utils.LogInfo("Redemption rejected for %s: %s", promo.FullCode(), validity)
		utils.UnprocessableEntity(c, "Promo code cannot be redeemed", gin.H{
			"reason": validity,
		})
		return
	}

	discount, err := utils.ComputeDiscount(&promo, req.PlanID, req.Price)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, utils.ErrPlanNotApplicable) {
			utils.LogInfo("Redemption rejected for %s: plan %s not applicable", promo.FullCode(), req.PlanID)
			utils.UnprocessableEntity(c, "Promo code cannot be redeemed", gin.H{
				"reason": "plan_not_applicable",
			})
			return
		}
		utils.LogError("Failed to compute discount for %s: %v", promo.ID, err)
		utils.InternalServerError(c, "Failed to compute discount", nil)
		return
	}

	// The cap is enforced here, not at the validity check: the update
	// only lands when a slot is still free, and zero rows affected means
	// a concurrent redemption won the last one.
	res := tx.Model(&models.PromoCode{}).
		Where("id = ? AND (max_uses IS NULL OR current_uses < max_uses)", promo.ID).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))
	if res.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to increment usage for %s: %v", promo.ID, res.Error)
		utils.InternalServerError(c, "Failed to redeem promo code", nil)
		return
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		utils.LogInfo("Redemption lost the last slot for %s", promo.FullCode())
		utils.UnprocessableEntity(c, "Promo code cannot be redeemed", gin.H{
			"reason": utils.PromoConcurrentExhaustion,
		})
		return
	}

	usage := models.PromoCodeUsage{
		PromoCodeID:    promo.ID,
		TenantID:       req.TenantID,
		InvoiceID:      req.InvoiceID,
		DiscountAmount: discount,
	}
	if err := tx.Create(&usage).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to record usage for %s: %v", promo.ID, err)
		utils.InternalServerError(c, "Failed to redeem promo code", nil)
		return
	}

	// A code carrying a referral prefix earns its affiliator commission
	// on the amount the tenant actually pays.
	if promo.HasReferralCode() {
		if err := recordReferralCommission(tx, &promo, &req, discount); err != nil {
			tx.Rollback()
			utils.LogError("Failed to record commission for %s: %v", promo.ID, err)
			utils.InternalServerError(c, "Failed to redeem promo code", nil)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Promo code %s redeemed for invoice %s, discount %.0f", promo.FullCode(), req.InvoiceID, discount)
	utils.Created(c, "Promo code redeemed", gin.H{
		"usage":           usage,
		"discount_amount": discount,
	})
}

func recordReferralCommission(tx *gorm.DB, promo *models.PromoCode, req *RedeemPromoCodeRequest, discount float64) error {
	var affiliator models.PortalUser
	if err := tx.Where("referral_code = ? AND role = ?", promo.ReferralCode, models.RoleAffiliator).
		First(&affiliator).Error; err != nil {
		// The affiliator may have been deleted since the code was
		// created; the redemption itself still stands.
		utils.LogError("No affiliator found for referral code %s", promo.ReferralCode)
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	netPrice := req.Price - discount
	commission := decimal.NewFromFloat(netPrice).
		Mul(decimal.NewFromFloat(cfg.CommissionRate)).
		Div(decimal.NewFromInt(100)).
		Floor().
		InexactFloat64()

	earning := models.AffiliateEarning{
		PortalUserID:      affiliator.ID,
		TenantID:          req.TenantID,
		SubscriptionPlan:  req.PlanID,
		SubscriptionPrice: req.Price,
		CommissionRate:    cfg.CommissionRate,
		CommissionAmount:  commission,
		Status:            models.EarningStatusPending,
	}
	if err := tx.Create(&earning).Error; err != nil {
		return err
	}

	affiliator.TotalEarnings += commission
	affiliator.PendingPayout += commission
	return tx.Save(&affiliator).Error
}
