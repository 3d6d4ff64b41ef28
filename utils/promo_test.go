package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungin/portal-api/models"
)

func promoFixture(mutate func(*models.PromoCode)) *models.PromoCode {
	now := time.Now()
	p := &models.PromoCode{
		ID:            "promo-1",
		Code:          "LAUNCH",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 20,
		ValidFrom:     now.AddDate(0, 0, -1),
		ValidUntil:    now.AddDate(0, 0, 1),
		IsActive:      true,
	}
	if mutate != nil {
		mutate(p)
	}
	return p
}

func intPtr(n int) *int { return &n }

func TestComposePromoCode(t *testing.T) {
	assert.Equal(t, "AB12SALE", ComposePromoCode("AB12", "SALE"))
	assert.Equal(t, "SALE", ComposePromoCode("", "SALE"))
}

func TestComposePromoCodeRoundTrip(t *testing.T) {
	referral := "AB12"
	suffix := "LAUNCH"
	full := ComposePromoCode(referral, suffix)
	require.True(t, strings.HasPrefix(full, referral))
	assert.Equal(t, suffix, strings.TrimPrefix(full, referral))
}

func TestNormalizePromoSuffix(t *testing.T) {
	assert.Equal(t, "SALE", NormalizePromoSuffix("sale"))
	assert.Equal(t, "SALE20", NormalizePromoSuffix("  sale20  "))
	assert.Equal(t, "ABCDEFGHIJ", NormalizePromoSuffix("abcdefghijklmno"))
	assert.Len(t, NormalizePromoSuffix("abcdefghijklmno"), MaxPromoSuffixLen)
}

func TestValidPromoSuffix(t *testing.T) {
	assert.True(t, ValidPromoSuffix("ABC"))
	assert.True(t, ValidPromoSuffix("SALE20"))
	assert.True(t, ValidPromoSuffix("ABCDEFGHIJ"))

	assert.False(t, ValidPromoSuffix("AB"))
	assert.False(t, ValidPromoSuffix("abc"))
	assert.False(t, ValidPromoSuffix("SALE-20"))
	assert.False(t, ValidPromoSuffix("ABCDEFGHIJK"))
	assert.False(t, ValidPromoSuffix(""))
}

func TestCheckPromoValidity(t *testing.T) {
	now := time.Now()

	t.Run("valid code", func(t *testing.T) {
		assert.Equal(t, PromoValid, CheckPromoValidity(promoFixture(nil), now))
	})

	t.Run("inactive", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) { p.IsActive = false })
		assert.Equal(t, PromoInactive, CheckPromoValidity(p, now))
	})

	t.Run("expired", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) {
			p.ValidFrom = now.AddDate(0, 0, -10)
			p.ValidUntil = now.AddDate(0, 0, -1)
		})
		assert.Equal(t, PromoExpired, CheckPromoValidity(p, now))
	})

	t.Run("not yet started", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) {
			p.ValidFrom = now.AddDate(0, 0, 1)
			p.ValidUntil = now.AddDate(0, 0, 10)
		})
		assert.Equal(t, PromoNotYetStarted, CheckPromoValidity(p, now))
	})

	t.Run("usage exhausted", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) {
			p.MaxUses = intPtr(5)
			p.CurrentUses = 5
		})
		assert.Equal(t, PromoUsageExhausted, CheckPromoValidity(p, now))
	})

	t.Run("uncapped code never exhausts", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) { p.CurrentUses = 1000000 })
		assert.Equal(t, PromoValid, CheckPromoValidity(p, now))
	})

	t.Run("inactive wins over expired", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) {
			p.IsActive = false
			p.ValidFrom = now.AddDate(0, 0, -10)
			p.ValidUntil = now.AddDate(0, 0, -1)
		})
		assert.Equal(t, PromoInactive, CheckPromoValidity(p, now))
	})

	t.Run("date window wins over usage cap", func(t *testing.T) {
		p := promoFixture(func(p *models.PromoCode) {
			p.ValidFrom = now.AddDate(0, 0, -10)
			p.ValidUntil = now.AddDate(0, 0, -1)
			p.MaxUses = intPtr(1)
			p.CurrentUses = 1
		})
		assert.Equal(t, PromoExpired, CheckPromoValidity(p, now))
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		p := promoFixture(nil)
		assert.Equal(t, PromoValid, CheckPromoValidity(p, p.ValidFrom))
		assert.Equal(t, PromoValid, CheckPromoValidity(p, p.ValidUntil))
	})

	t.Run("lost-race exhaustion has its own reason", func(t *testing.T) {
		// A cap observed as full up front is plain exhaustion; losing the
		// last slot after passing the check is reported distinctly.
		p := promoFixture(func(p *models.PromoCode) {
			p.MaxUses = intPtr(5)
			p.CurrentUses = 5
		})
		assert.Equal(t, PromoUsageExhausted, CheckPromoValidity(p, now))
		assert.NotEqual(t, PromoUsageExhausted, PromoConcurrentExhaustion)
	})
}

func TestPlanApplicable(t *testing.T) {
	assert.True(t, PlanApplicable("", "pro"))
	assert.True(t, PlanApplicable("   ", "pro"))
	assert.True(t, PlanApplicable("pro", "pro"))
	assert.True(t, PlanApplicable("basic, pro, enterprise", "pro"))
	assert.True(t, PlanApplicable("PRO", "pro"))

	assert.False(t, PlanApplicable("basic,enterprise", "pro"))
}

func TestComputeDiscountPercentage(t *testing.T) {
	p := promoFixture(nil) // 20% off

	t.Run("whole result", func(t *testing.T) {
		amount, err := ComputeDiscount(p, "pro", 100000)
		require.NoError(t, err)
		assert.Equal(t, float64(20000), amount)
	})

	t.Run("fractional result rounds down", func(t *testing.T) {
		// 20% of 33 is 6.6; no fractional currency units.
		amount, err := ComputeDiscount(p, "pro", 33)
		require.NoError(t, err)
		assert.Equal(t, float64(6), amount)
	})

	t.Run("never exceeds price", func(t *testing.T) {
		p99 := promoFixture(func(p *models.PromoCode) { p.DiscountValue = 99 })
		for _, price := range []float64{1, 33, 100, 99999} {
			amount, err := ComputeDiscount(p99, "pro", price)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, amount, float64(0))
			assert.LessOrEqual(t, amount, price)
		}
	})
}

func TestComputeDiscountFixed(t *testing.T) {
	p := promoFixture(func(p *models.PromoCode) {
		p.DiscountType = models.DiscountTypeFixed
		p.DiscountValue = 50000
	})

	t.Run("below price", func(t *testing.T) {
		amount, err := ComputeDiscount(p, "pro", 100000)
		require.NoError(t, err)
		assert.Equal(t, float64(50000), amount)
	})

	t.Run("clamped to price", func(t *testing.T) {
		amount, err := ComputeDiscount(p, "pro", 30000)
		require.NoError(t, err)
		assert.Equal(t, float64(30000), amount)
	})
}

func TestComputeDiscountPlanRestriction(t *testing.T) {
	p := promoFixture(func(p *models.PromoCode) { p.ApplicablePlans = "basic,pro" })

	_, err := ComputeDiscount(p, "enterprise", 100000)
	assert.ErrorIs(t, err, ErrPlanNotApplicable)

	amount, err := ComputeDiscount(p, "basic", 100000)
	require.NoError(t, err)
	assert.Equal(t, float64(20000), amount)
}

func TestComputeDiscountUnknownType(t *testing.T) {
	p := promoFixture(func(p *models.PromoCode) { p.DiscountType = "bogus" })
	_, err := ComputeDiscount(p, "pro", 100000)
	assert.Error(t, err)
}

func TestValidatePromoFields(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("valid definition", func(t *testing.T) {
		errs := ValidatePromoFields("LAUNCH", models.DiscountTypePercentage, 20, from, until, nil)
		assert.False(t, errs.HasErrors())
	})

	t.Run("percentage over 99 rejected", func(t *testing.T) {
		errs := ValidatePromoFields("LAUNCH", models.DiscountTypePercentage, 150, from, until, nil)
		require.True(t, errs.HasErrors())
		assert.Equal(t, "discount_value", errs[0].Field)
	})

	t.Run("full 100 percent off disallowed", func(t *testing.T) {
		errs := ValidatePromoFields("LAUNCH", models.DiscountTypePercentage, 100, from, until, nil)
		assert.True(t, errs.HasErrors())
	})

	t.Run("99 percent is the cap", func(t *testing.T) {
		errs := ValidatePromoFields("LAUNCH", models.DiscountTypePercentage, 99, from, until, nil)
		assert.False(t, errs.HasErrors())
	})

	t.Run("dates out of order", func(t *testing.T) {
		errs := ValidatePromoFields("LAUNCH", models.DiscountTypePercentage, 20, until, from, nil)
		require.True(t, errs.HasErrors())
		assert.Equal(t, "valid_until", errs[0].Field)
	})

	t.Run("collects every violation", func(t *testing.T) {
		errs := ValidatePromoFields("x", "bogus", 0, until, from, intPtr(0))
		fields := make(map[string]bool)
		for _, e := range errs {
			fields[e.Field] = true
		}
		assert.True(t, fields["code"])
		assert.True(t, fields["discount_type"])
		assert.True(t, fields["valid_until"])
		assert.True(t, fields["max_uses"])
		assert.GreaterOrEqual(t, len(errs), 4)
	})

	t.Run("fixed amount must be positive", func(t *testing.T) {
		errs := ValidatePromoFields("LAUNCH", models.DiscountTypeFixed, -5, from, until, nil)
		require.True(t, errs.HasErrors())
		assert.Equal(t, "discount_value", errs[0].Field)
	})
}
