package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is a customer of the main product (a POS merchant). The portal
// only mirrors the fields the dashboards need.
type Tenant struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	BusinessType string    `json:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// AffiliateTenant links a tenant to the affiliator who referred it.
// One tenant is attributed to at most one affiliator.
type AffiliateTenant struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	PortalUserID string    `gorm:"index;size:36" json:"portal_user_id"`
	TenantID     string    `gorm:"uniqueIndex;size:36" json:"tenant_id"`
	CreatedAt    time.Time `json:"created_at"`

	Tenant     *Tenant     `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	PortalUser *PortalUser `gorm:"foreignKey:PortalUserID" json:"affiliator,omitempty"`
}

func (a *AffiliateTenant) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
