package controllers

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// InviteAffiliatorRequest represents the request body for inviting a new affiliator
type InviteAffiliatorRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

// InviteAffiliator creates an invite for a new affiliator and emails the
// accept link
func InviteAffiliator(c *gin.Context) {
	utils.LogInfo("InviteAffiliator called")

	admin := c.MustGet("user").(models.PortalUser)

	var req InviteAffiliatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if valid, msg := utils.ValidateName(req.Name); !valid {
		utils.BadRequest(c, "Invalid name", msg)
		return
	}

	var existing models.PortalUser
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("Invite rejected - email already registered: %s", req.Email)
		utils.Conflict(c, "A portal user with this email already exists", nil)
		return
	}

	invite := models.PortalInvite{
		Email:     req.Email,
		Name:      req.Name,
		Token:     utils.GenerateInviteToken(),
		InvitedBy: admin.ID,
		ExpiresAt: time.Now().AddDate(0, 0, 7),
	}

	if err := config.DB.Create(&invite).Error; err != nil {
		utils.LogError("Failed to create invite: %v", err)
		utils.InternalServerError(c, "Failed to create invite", nil)
		return
	}

	baseURL := os.Getenv("PORTAL_BASE_URL")
	inviteURL := fmt.Sprintf("%s/accept-invite?token=%s", baseURL, invite.Token)

	if err := utils.SendInviteEmail(req.Email, req.Name, inviteURL); err != nil {
		// The invite is still usable; the admin can copy the link from
		// the response.
		utils.LogError("Failed to send invite email to %s: %v", req.Email, err)
	}

	utils.LogInfo("Invite created for %s by admin %s", req.Email, admin.ID)
	utils.Created(c, "Invite sent", gin.H{
		"invite_url": inviteURL,
		"expires_at": invite.ExpiresAt,
	})
}

// ValidateInvite returns the invitee details for a pending invite token
func ValidateInvite(c *gin.Context) {
	token := c.Param("token")

	var invite models.PortalInvite
	if err := config.DB.Where("token = ?", token).First(&invite).Error; err != nil {
		utils.LogError("Invalid invite token")
		utils.NotFound(c, "Invalid invite token")
		return
	}

	if invite.IsAccepted() {
		utils.BadRequest(c, "Invite has already been used", nil)
		return
	}
	if invite.IsExpired() {
		utils.BadRequest(c, "Invite has expired", nil)
		return
	}

	utils.Success(c, "Invite is valid", gin.H{
		"email": invite.Email,
		"name":  invite.Name,
	})
}

// AcceptInviteRequest represents the request body for accepting an invite
type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

// AcceptInvite creates the affiliator account for a pending invite and
// logs the new user in
func AcceptInvite(c *gin.Context) {
	utils.LogInfo("AcceptInvite called")

	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid request format: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if valid, msg := utils.ValidatePassword(req.Password); !valid {
		utils.BadRequest(c, "Invalid password", msg)
		return
	}

	phone := ""
	if req.Phone != "" {
		valid, formatted := utils.ValidatePhone(req.Phone)
		if !valid {
			utils.BadRequest(c, "Invalid phone number", formatted)
			return
		}
		phone = formatted
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", nil)
		return
	}

	var invite models.PortalInvite
	if err := tx.Where("token = ?", req.Token).First(&invite).Error; err != nil {
		tx.Rollback()
		utils.NotFound(c, "Invalid invite token")
		return
	}

	if invite.IsAccepted() {
		tx.Rollback()
		utils.BadRequest(c, "Invite has already been used", nil)
		return
	}
	if invite.IsExpired() {
		tx.Rollback()
		utils.BadRequest(c, "Invite has expired", nil)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		tx.Rollback()
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	// Retry on the rare referral code collision.
	referralCode := utils.GenerateReferralCode()
	for i := 0; i < 3; i++ {
		var clash models.PortalUser
		if err := tx.Where("referral_code = ?", referralCode).First(&clash).Error; err != nil {
			break
		}
		referralCode = utils.GenerateReferralCode()
	}

	user := models.PortalUser{
		Email:        invite.Email,
		Name:         invite.Name,
		Phone:        phone,
		PasswordHash: hash,
		Role:         models.RoleAffiliator,
		ReferralCode: referralCode,
		IsActive:     true,
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create portal user: %v", err)
		utils.InternalServerError(c, "Failed to create account", nil)
		return
	}

	now := time.Now()
	invite.AcceptedAt = &now
	if err := tx.Save(&invite).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to mark invite accepted: %v", err)
		utils.InternalServerError(c, "Failed to accept invite", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to commit transaction", nil)
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to generate token for new user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Account created but login failed, please login manually", nil)
		return
	}

	utils.LogInfo("Affiliator %s created via invite %s", user.ID, invite.ID)
	utils.Created(c, "Account created", gin.H{
		"access_token": token,
		"user":         user,
	})
}
