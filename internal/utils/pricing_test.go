package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func i32(v int32) *int32 { return &v }

func TestEstimateCostCents(t *testing.T) {
	from := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("NoPricing", func(t *testing.T) {
		assert.Equal(t, int32(0), EstimateCostCents(nil, nil, from, from.Add(48*time.Hour)))
	})

	t.Run("HourlyOnly", func(t *testing.T) {
		got := EstimateCostCents(i32(500), nil, from, from.Add(3*time.Hour))
		assert.Equal(t, int32(1500), got)
	})

	t.Run("PartialHourRoundsUp", func(t *testing.T) {
		got := EstimateCostCents(i32(500), nil, from, from.Add(2*time.Hour+time.Minute))
		assert.Equal(t, int32(1500), got)
	})

	t.Run("DailyOnly", func(t *testing.T) {
		got := EstimateCostCents(nil, i32(2000), from, from.Add(36*time.Hour))
		assert.Equal(t, int32(4000), got)
	})

	t.Run("CheaperOptionWins", func(t *testing.T) {
		// 2 hours: hourly 1000, daily 2000.
		got := EstimateCostCents(i32(500), i32(2000), from, from.Add(2*time.Hour))
		assert.Equal(t, int32(1000), got)

		// 5 days: hourly 60000, daily 10000.
		got = EstimateCostCents(i32(500), i32(2000), from, from.Add(5*24*time.Hour))
		assert.Equal(t, int32(10000), got)
	})

	t.Run("NonPositiveWindow", func(t *testing.T) {
		assert.Equal(t, int32(0), EstimateCostCents(i32(500), nil, from, from))
		assert.Equal(t, int32(0), EstimateCostCents(i32(500), nil, from, from.Add(-time.Hour)))
	})
}
