package utils

import (
	"crypto/rand"
	"math/big"
)

// Referral codes avoid 0/O and 1/I so they survive being read out loud.
const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ReferralCodeLength is the length of generated affiliator referral codes.
const ReferralCodeLength = 6

// RandomString returns n random characters from the referral alphabet.
func RandomString(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(referralAlphabet)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is
			// broken; there is no sensible recovery here.
			panic(err)
		}
		b[i] = referralAlphabet[idx.Int64()]
	}
	return string(b)
}

// GenerateReferralCode creates a new affiliator referral code.
func GenerateReferralCode() string {
	return RandomString(ReferralCodeLength)
}

// GenerateInviteToken creates a URL-safe token for invite links.
func GenerateInviteToken() string {
	return RandomString(32)
}
