package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portal roles
const (
	RoleSuperAdmin = "super_admin"
	RoleAffiliator = "affiliator"
)

// PortalUser represents an account on the affiliate portal: either a
// super admin or an affiliate partner ("affiliator").
type PortalUser struct {
	ID            string         `gorm:"primaryKey;size:36" json:"id"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	PasswordHash  string         `json:"-"`
	Role          string         `gorm:"default:affiliator" json:"role"`
	ReferralCode  string         `gorm:"uniqueIndex" json:"referral_code"`
	BankName      string         `json:"bank_name"`
	BankAccount   string         `json:"bank_account"`
	BankHolder    string         `json:"bank_holder"`
	TotalEarnings float64        `json:"total_earnings"`
	PendingPayout float64        `json:"pending_payout"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt   time.Time      `json:"last_login_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *PortalUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin reports whether the user can use super-admin endpoints.
func (u *PortalUser) IsAdmin() bool {
	return u.Role == RoleSuperAdmin
}
