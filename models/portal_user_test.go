package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPortalUserIsAdmin(t *testing.T) {
	assert.True(t, (&PortalUser{Role: RoleSuperAdmin}).IsAdmin())
	assert.False(t, (&PortalUser{Role: RoleAffiliator}).IsAdmin())
}

func TestPortalInviteLifecycle(t *testing.T) {
	invite := PortalInvite{ExpiresAt: time.Now().Add(time.Hour)}
	assert.False(t, invite.IsExpired())
	assert.False(t, invite.IsAccepted())

	invite.ExpiresAt = time.Now().Add(-time.Hour)
	assert.True(t, invite.IsExpired())

	now := time.Now()
	invite.AcceptedAt = &now
	assert.True(t, invite.IsAccepted())
}
