package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warungin/portal-api/models"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func storedPromo() models.PromoCode {
	return models.PromoCode{
		ID:            "promo-1",
		Code:          "SUMMER25",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 25,
		ValidFrom:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil:    time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
		MaxUses:       intPtr(5),
		CurrentUses:   4,
		IsActive:      true,
	}
}

func TestMergePromoUpdateRejectsCodeChange(t *testing.T) {
	_, _, immErr := mergePromoUpdate(storedPromo(), UpdatePromoCodeRequest{
		Code: strPtr("WINTER10"),
	})
	require.NotNil(t, immErr)
	assert.Equal(t, "code", immErr.Field)

	// Resubmitting the same suffix, even in another case, is not a change.
	merged, errs, immErr := mergePromoUpdate(storedPromo(), UpdatePromoCodeRequest{
		Code: strPtr("summer25"),
	})
	require.Nil(t, immErr)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "SUMMER25", merged.Code)
}

func TestMergePromoUpdateReferralImmutableOnceSet(t *testing.T) {
	stored := storedPromo()
	stored.ReferralCode = "ABC123"

	_, _, immErr := mergePromoUpdate(stored, UpdatePromoCodeRequest{
		ReferralCode: strPtr("XYZ789"),
	})
	require.NotNil(t, immErr)
	assert.Equal(t, "referral_code", immErr.Field)

	// Resending the current value is a no-op, not a change.
	merged, _, immErr := mergePromoUpdate(stored, UpdatePromoCodeRequest{
		ReferralCode: strPtr("ABC123"),
	})
	require.Nil(t, immErr)
	assert.Equal(t, "ABC123", merged.ReferralCode)
}

func TestMergePromoUpdateSetsReferralFirstTime(t *testing.T) {
	merged, errs, immErr := mergePromoUpdate(storedPromo(), UpdatePromoCodeRequest{
		ReferralCode: strPtr("ABC123"),
	})
	require.Nil(t, immErr)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "ABC123", merged.ReferralCode)
}

func TestMergePromoUpdatePreservesUsageCounter(t *testing.T) {
	// Every mutable field changes, yet the counter stays exactly what was
	// read: only the redemption path may move it.
	merged, errs, immErr := mergePromoUpdate(storedPromo(), UpdatePromoCodeRequest{
		DiscountType:    strPtr(models.DiscountTypeFixed),
		DiscountValue:   floatPtr(50000),
		ValidFrom:       strPtr("2026-02-01"),
		ValidUntil:      strPtr("2026-11-30"),
		MaxUses:         intPtr(10),
		ApplicablePlans: strPtr("pro,enterprise"),
		IsActive:        boolPtr(false),
	})
	require.Nil(t, immErr)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, 4, merged.CurrentUses)
	assert.Equal(t, "promo-1", merged.ID)
	assert.Equal(t, "SUMMER25", merged.Code)
	assert.Equal(t, models.DiscountTypeFixed, merged.DiscountType)
	assert.False(t, merged.IsActive)
}

func TestMergePromoUpdateWidensValidUntil(t *testing.T) {
	merged, errs, immErr := mergePromoUpdate(storedPromo(), UpdatePromoCodeRequest{
		ValidUntil: strPtr("2026-06-30"),
	})
	require.Nil(t, immErr)
	assert.False(t, errs.HasErrors())
	assert.Equal(t, 30, merged.ValidUntil.Day())
	assert.Equal(t, 23, merged.ValidUntil.Hour())
}

func TestMergePromoUpdateValidatesMergedResult(t *testing.T) {
	_, errs, immErr := mergePromoUpdate(storedPromo(), UpdatePromoCodeRequest{
		DiscountValue: floatPtr(150),
		ValidFrom:     strPtr("01-02-2026"),
	})
	require.Nil(t, immErr)
	require.True(t, errs.HasErrors())

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "discount_value")
	assert.Contains(t, fields, "valid_from")
}
