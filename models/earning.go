package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Earning statuses
const (
	EarningStatusPending = "pending"
	EarningStatusPaid    = "paid"
)

// AffiliateEarning is one commission entry: an affiliator earns a cut of a
// referred tenant's subscription payment.
type AffiliateEarning struct {
	ID                string     `gorm:"primaryKey;size:36" json:"id"`
	PortalUserID      string     `gorm:"index;size:36" json:"portal_user_id"`
	TenantID          string     `gorm:"size:36" json:"tenant_id"`
	SubscriptionPlan  string     `json:"subscription_plan"`
	SubscriptionPrice float64    `json:"subscription_price"`
	CommissionRate    float64    `json:"commission_rate"`
	CommissionAmount  float64    `json:"commission_amount"`
	Status            string     `gorm:"default:pending;index" json:"status"`
	PaidAt            *time.Time `json:"paid_at"`
	CreatedAt         time.Time  `json:"created_at"`

	Tenant     *Tenant     `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	Affiliator *PortalUser `gorm:"foreignKey:PortalUserID" json:"affiliator,omitempty"`
}

func (e *AffiliateEarning) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// Payout records a bank transfer made to an affiliator against their
// pending balance.
type Payout struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	PortalUserID string    `gorm:"index;size:36" json:"portal_user_id"`
	Amount       float64   `json:"amount"`
	Notes        string    `json:"notes"`
	CreatedBy    string    `gorm:"size:36" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Payout) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
