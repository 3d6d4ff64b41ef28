package controllers

import (
	"os"

	"github.com/warungin/portal-api/config"
	"github.com/warungin/portal-api/models"
	"github.com/warungin/portal-api/utils"
)

// CreateSampleAdmin seeds the first super admin from environment
// variables if no admin account exists yet.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.PortalUser{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("No admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are unset, skipping seed")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.PortalUser{
		Email:        email,
		Name:         "Super Admin",
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		ReferralCode: utils.GenerateReferralCode(),
		IsActive:     true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}

	utils.LogInfo("Seeded super admin %s", email)
	return nil
}
