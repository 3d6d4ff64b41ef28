package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// RecordPayoutRequest represents the request body for recording a payout
type RecordPayoutRequest struct {
	PortalUserID string  `json:"portal_user_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Notes        string  `json:"notes"`
}

// RecordPayout records a bank transfer made to an affiliator. The amount
// is settled against the oldest pending earnings first and subtracted
// from the affiliator's pending balance.
func RecordPayout(c *gin.Context) {
	utils.LogInfo("RecordPayout called")

	admin := c.MustGet("user").(models.PortalUser)

	var req RecordPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := utils.ValidateAmount(req.Amount); err != nil {
		utils.BadRequest(c, "Invalid amount", err.Error())
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var affiliator models.PortalUser
	if err := tx.Where("id = ? AND role = ?", req.PortalUserID, models.RoleAffiliator).
		First(&affiliator).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Affiliator not found")
		return
	}

	if req.Amount > affiliator.PendingPayout {
		tx.Rollback()
		utils.LogError("Payout %.2f exceeds pending balance %.2f for affiliator %s",
			req.Amount, affiliator.PendingPayout, affiliator.ID)
		utils.BadRequest(c, "Payout amount exceeds pending balance", gin.H{
			"pending_payout": affiliator.PendingPayout,
		})
		return
	}

	// Settle oldest pending earnings first until the payout is covered.
	var pending []models.AffiliateEarning
	if err := tx.Where("portal_user_id = ? AND status = ?", affiliator.ID, models.EarningStatusPending).
		Order("created_at ASC").
		Find(&pending).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to fetch pending earnings for %s: %v", affiliator.ID, err)
		utils.InternalServerError(c, "Failed to record payout", nil)
		return
	}

	now := time.Now()
	remaining := req.Amount
	for i := range pending {
		if remaining < pending[i].CommissionAmount {
			break
		}
		remaining -= pending[i].CommissionAmount
		pending[i].Status = models.EarningStatusPaid
		pending[i].PaidAt = &now
		if err := tx.Save(&pending[i]).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to mark earning %s paid: %v", pending[i].ID, err)
			utils.InternalServerError(c, "Failed to record payout", nil)
			return
		}
	}

	payout := models.Payout{
		PortalUserID: affiliator.ID,
		Amount:       req.Amount,
		Notes:        req.Notes,
		CreatedBy:    admin.ID,
	}
	if err := tx.Create(&payout).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create payout record: %v", err)
		utils.InternalServerError(c, "Failed to record payout", nil)
		return
	}

	affiliator.PendingPayout -= req.Amount
	if err := tx.Save(&affiliator).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update pending balance for %s: %v", affiliator.ID, err)
		utils.InternalServerError(c, "Failed to record payout", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	utils.LogInfo("Payout of %.2f recorded for affiliator %s by admin %s", req.Amount, affiliator.ID, admin.ID)
	utils.Success(c, "Payout recorded", gin.H{
		"payout_id":          payout.ID,
		"new_pending_payout": affiliator.PendingPayout,
		"total_earnings":     affiliator.TotalEarnings,
	})
}

// ListPayouts returns recorded payouts, newest first
func ListPayouts(c *gin.Context) {
	utils.LogInfo("ListPayouts called")

	page, limit := utils.GetPaginationParams(c)

	var payouts []models.Payout
	query := config.DB.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit)
	if affiliatorID := c.Query("portal_user_id"); affiliatorID != "" {
		query = query.Where("portal_user_id = ?", affiliatorID)
	}
	if err := query.Find(&payouts).Error; err != nil {
		utils.LogError("Failed to fetch payouts: %v", err)
		utils.InternalServerError(c, "Failed to fetch payouts", nil)
		return
	}

	utils.Success(c, "Payouts retrieved", payouts)
}
