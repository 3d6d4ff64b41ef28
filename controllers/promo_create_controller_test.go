package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePromoDate(t *testing.T) {
	d, err := parsePromoDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())

	d, err = parsePromoDate("2026-03-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parsePromoDate("15/03/2026")
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	bare := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	eod := endOfDay(bare)
	assert.Equal(t, 23, eod.Hour())
	assert.Equal(t, 59, eod.Minute())
	assert.Equal(t, 15, eod.Day())

	// A timestamp with a time component is left alone.
	stamped := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, stamped, endOfDay(stamped))
}
