package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFieldValidationErrors(t *testing.T) {
	var errs FieldValidationErrors
	assert.False(t, errs.HasErrors())

	errs.Add("code", "must be 3-10 uppercase letters or digits")
	errs.Add("discount_value", "percentage must be greater than 0 and at most 99")

	assert.True(t, errs.HasErrors())
	assert.Len(t, errs, 2)
	assert.Contains(t, errs.Error(), "code:")
	assert.Contains(t, errs.Error(), "discount_value:")
}

func TestImmutableFieldError(t *testing.T) {
	err := &ImmutableFieldError{Field: "referral_code"}
	assert.Contains(t, err.Error(), "referral_code")
	assert.True(t, IsImmutableFieldError(err))
	assert.False(t, IsImmutableFieldError(assert.AnError))
}

func TestIsDuplicateKeyError(t *testing.T) {
	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "idx_promo_referral_code" (SQLSTATE 23505)`)
	assert.True(t, IsDuplicateKeyError(pgErr))
	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicateKeyError(nil))
	assert.False(t, IsDuplicateKeyError(assert.AnError))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(NotFoundError("promo code not found", nil)))
	assert.False(t, IsNotFoundError(ConflictError("promo code already exists", nil)))
	assert.False(t, IsNotFoundError(assert.AnError))
}
