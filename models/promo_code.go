package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discount types for promo codes
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// PromoCode is a discount offer, optionally tied to an affiliator's
// referral code. The string customers actually type is the referral code
// prefix followed by the code suffix; see FullCode.
//
// Codes are never hard-deleted: usage history must stay attributable, so
// retirement is a soft deactivate (IsActive = false).
type PromoCode struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Code            string     `gorm:"size:10;uniqueIndex:idx_promo_referral_code" json:"code"`
	ReferralCode    string     `gorm:"size:20;uniqueIndex:idx_promo_referral_code" json:"referral_code"`
	DiscountType    string     `json:"discount_type"`
	DiscountValue   float64    `json:"discount_value"`
	ValidFrom       time.Time  `json:"valid_from"`
	ValidUntil      time.Time  `json:"valid_until"`
	MaxUses         *int       `json:"max_uses,omitempty"`
	CurrentUses     int        `gorm:"default:0" json:"current_uses"`
	ApplicablePlans string     `json:"applicable_plans"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	CreatedBy       string     `gorm:"size:36" json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Usages []PromoCodeUsage `gorm:"foreignKey:PromoCodeID" json:"-"`
}

func (p *PromoCode) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// FullCode is the string end users enter. It is derived on read and never
// stored, so the composition rule has a single source of truth.
func (p *PromoCode) FullCode() string {
	return p.ReferralCode + p.Code
}

// HasReferralCode reports whether the referral prefix has been set. Once
// set it is immutable; commission attribution cannot be reassigned after
// a code may have been shared.
func (p *PromoCode) HasReferralCode() bool {
	return p.ReferralCode != ""
}

// RemainingUses returns the number of redemptions left, or nil when the
// code is uncapped.
func (p *PromoCode) RemainingUses() *int {
	if p.MaxUses == nil {
		return nil
	}
	left := *p.MaxUses - p.CurrentUses
	if left < 0 {
		left = 0
	}
	return &left
}

// PromoCodeUsage is an immutable redemption record. DiscountAmount is
// frozen at redemption time and never recomputed, even if the code
// definition later changes.
type PromoCodeUsage struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	PromoCodeID    string    `gorm:"index;size:36" json:"promo_code_id"`
	TenantID       string    `gorm:"size:36" json:"tenant_id"`
	InvoiceID      string    `gorm:"size:36" json:"invoice_id"`
	DiscountAmount float64   `json:"discount_amount"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *PromoCodeUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
