package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warungin/portal-api/models"
)

// PromoValidity is the outcome of checking whether a promo code is
// currently usable. These are expected results, not failures; callers
// surface them to the UI as a precise reason.
type PromoValidity string

const (
	PromoValid          PromoValidity = "valid"
	PromoInactive       PromoValidity = "inactive"
	PromoExpired        PromoValidity = "expired"
	PromoNotYetStarted  PromoValidity = "not_yet_started"
	PromoUsageExhausted PromoValidity = "usage_exhausted"

	// PromoConcurrentExhaustion is never returned by CheckPromoValidity:
	// it is the redemption path's reason when the conditional increment
	// finds no free slot even though the validity check just passed,
	// meaning a concurrent redemption took the last one.
	PromoConcurrentExhaustion PromoValidity = "concurrent_exhaustion"
)

// MaxPromoSuffixLen is the longest allowed code suffix.
const MaxPromoSuffixLen = 10

var promoSuffixRegex = regexp.MustCompile(`^[A-Z0-9]{3,10}$`)

// ErrPlanNotApplicable is returned by ComputeDiscount when the code is
// restricted to plans that do not include the requested one.
var ErrPlanNotApplicable = fmt.Errorf("promo code is not applicable to this plan")

// ComposePromoCode builds the customer-facing code string: the referral
// prefix (when present) followed by the code suffix.
func ComposePromoCode(referralCode, suffix string) string {
	if referralCode == "" {
		return suffix
	}
	return referralCode + suffix
}

// NormalizePromoSuffix uppercases the input and truncates it to the
// maximum suffix length. Callers must still reject results that fail
// ValidPromoSuffix before persisting.
func NormalizePromoSuffix(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) > MaxPromoSuffixLen {
		s = s[:MaxPromoSuffixLen]
	}
	return s
}

// ValidPromoSuffix reports whether s is 3-10 uppercase alphanumerics.
func ValidPromoSuffix(s string) bool {
	return promoSuffixRegex.MatchString(s)
}

// CheckPromoValidity determines whether a code is usable at the given
// instant. The order of checks is deliberate: the administrative flag
// first, then the date window, then the usage cap. An admin looking at a
// rejected redemption sees the most actionable reason, and usage
// exhaustion is only reported for codes that are otherwise live.
func CheckPromoValidity(code *models.PromoCode, now time.Time) PromoValidity {
	if !code.IsActive {
		return PromoInactive
	}
	if now.Before(code.ValidFrom) {
		return PromoNotYetStarted
	}
	if now.After(code.ValidUntil) {
		return PromoExpired
	}
	if code.MaxUses != nil && code.CurrentUses >= *code.MaxUses {
		return PromoUsageExhausted
	}
	return PromoValid
}

// PlanApplicable reports whether planID is covered by the code's plan
// restriction. An empty restriction means the code applies to all plans.
func PlanApplicable(applicablePlans, planID string) bool {
	if strings.TrimSpace(applicablePlans) == "" {
		return true
	}
	for _, plan := range strings.Split(applicablePlans, ",") {
		if strings.EqualFold(strings.TrimSpace(plan), planID) {
			return true
		}
	}
	return false
}

// ComputeDiscount calculates the discount amount for applying a code to a
// subscription price. Pure: it never touches persisted state.
//
// Percentage discounts are computed exactly with decimals and floored to
// the smallest currency unit, so 20% of 33 is 6, not 6.6. The result is
// always within [0, price]; a fixed discount larger than the price is
// clamped rather than producing a negative payable amount.
func ComputeDiscount(code *models.PromoCode, planID string, price float64) (float64, error) {
	if !PlanApplicable(code.ApplicablePlans, planID) {
		return 0, ErrPlanNotApplicable
	}

	switch code.DiscountType {
	case models.DiscountTypePercentage:
		discount := decimal.NewFromFloat(price).
			Mul(decimal.NewFromFloat(code.DiscountValue)).
			Div(decimal.NewFromInt(100)).
			Floor()
		amount := discount.InexactFloat64()
		if amount > price {
			amount = price
		}
		if amount < 0 {
			amount = 0
		}
		return amount, nil
	case models.DiscountTypeFixed:
		amount := code.DiscountValue
		if amount > price {
			amount = price
		}
		if amount < 0 {
			amount = 0
		}
		return amount, nil
	default:
		return 0, fmt.Errorf("unknown discount type %q", code.DiscountType)
	}
}

// ValidatePromoFields checks the cross-field invariants of a promo code
// definition and returns every violation, not just the first. It is used
// on create with the raw request and on update with the merged result, so
// a partial update that looks fine per field but produces an inconsistent
// whole is still rejected.
func ValidatePromoFields(suffix, discountType string, discountValue float64, validFrom, validUntil time.Time, maxUses *int) FieldValidationErrors {
	var errs FieldValidationErrors

	if !ValidPromoSuffix(suffix) {
		errs.Add("code", "must be 3-10 uppercase letters or digits")
	}

	switch discountType {
	case models.DiscountTypePercentage:
		// 100%-off codes are disallowed outright.
		if discountValue <= 0 || discountValue > 99 {
			errs.Add("discount_value", "percentage must be greater than 0 and at most 99")
		}
	case models.DiscountTypeFixed:
		if discountValue <= 0 {
			errs.Add("discount_value", "fixed amount must be greater than 0")
		}
	default:
		errs.Add("discount_type", "must be either percentage or fixed")
	}

	if validFrom.IsZero() {
		errs.Add("valid_from", "is required")
	}
	if validUntil.IsZero() {
		errs.Add("valid_until", "is required")
	}
	if !validFrom.IsZero() && !validUntil.IsZero() && validFrom.After(validUntil) {
		errs.Add("valid_until", "must not be before valid_from")
	}

	if maxUses != nil && *maxUses <= 0 {
		errs.Add("max_uses", "must be a positive number when set")
	}

	return errs
}
