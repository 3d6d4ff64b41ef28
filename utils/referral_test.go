package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode()
	assert.Len(t, code, ReferralCodeLength)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(referralAlphabet, r), "unexpected character %q", r)
	}
}

func TestGenerateReferralCodeAvoidsAmbiguousCharacters(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := GenerateReferralCode()
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
	}
}

func TestGenerateInviteToken(t *testing.T) {
	a := GenerateInviteToken()
	b := GenerateInviteToken()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
