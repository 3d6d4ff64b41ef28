package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PortalInvite is a pending invitation for a new affiliator. The token is
// sent by email; accepting it creates the PortalUser.
type PortalInvite struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Email      string     `gorm:"index" json:"email"`
	Name       string     `json:"name"`
	Token      string     `gorm:"uniqueIndex;size:64" json:"-"`
	InvitedBy  string     `gorm:"size:36" json:"invited_by"`
	ExpiresAt  time.Time  `json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (i *PortalInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// IsExpired reports whether the invite can no longer be accepted.
func (i *PortalInvite) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsAccepted reports whether the invite has already been used.
func (i *PortalInvite) IsAccepted() bool {
	return i.AcceptedAt != nil
}
