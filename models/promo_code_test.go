package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoCodeFullCode(t *testing.T) {
	withReferral := PromoCode{Code: "SALE", ReferralCode: "AB12"}
	assert.Equal(t, "AB12SALE", withReferral.FullCode())

	withoutReferral := PromoCode{Code: "LAUNCH"}
	assert.Equal(t, "LAUNCH", withoutReferral.FullCode())
}

func TestPromoCodeHasReferralCode(t *testing.T) {
	assert.True(t, (&PromoCode{ReferralCode: "AB12"}).HasReferralCode())
	assert.False(t, (&PromoCode{}).HasReferralCode())
}

func TestPromoCodeRemainingUses(t *testing.T) {
	t.Run("uncapped", func(t *testing.T) {
		p := PromoCode{CurrentUses: 10}
		assert.Nil(t, p.RemainingUses())
	})

	t.Run("capped", func(t *testing.T) {
		max := 10
		p := PromoCode{MaxUses: &max, CurrentUses: 3}
		left := p.RemainingUses()
		require.NotNil(t, left)
		assert.Equal(t, 7, *left)
	})

	t.Run("never negative", func(t *testing.T) {
		max := 5
		p := PromoCode{MaxUses: &max, CurrentUses: 8}
		left := p.RemainingUses()
		require.NotNil(t, left)
		assert.Equal(t, 0, *left)
	})
}

