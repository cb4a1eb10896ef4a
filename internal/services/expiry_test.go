package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemainingAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("days only", func(t *testing.T) {
		r := RemainingAt(now, now.Add(3*24*time.Hour+5*time.Hour))
		assert.False(t, r.Expired)
		assert.Equal(t, 3, r.Days)
		assert.Equal(t, "3d", r.Text)
	})

	t.Run("hours and minutes", func(t *testing.T) {
		r := RemainingAt(now, now.Add(2*time.Hour+30*time.Minute))
		assert.False(t, r.Expired)
		assert.Equal(t, 0, r.Days)
		assert.Equal(t, 2, r.Hours)
		assert.Equal(t, 30, r.Minutes)
		assert.Equal(t, "2h30m", r.Text)
	})

	t.Run("minutes only", func(t *testing.T) {
		r := RemainingAt(now, now.Add(9*time.Minute))
		assert.Equal(t, "9m", r.Text)
	})

	t.Run("under a minute renders zero minutes", func(t *testing.T) {
		r := RemainingAt(now, now.Add(30*time.Second))
		assert.False(t, r.Expired)
		assert.Equal(t, "0m", r.Text)
	})

	t.Run("expired at exactly now", func(t *testing.T) {
		r := RemainingAt(now, now)
		assert.True(t, r.Expired)
		assert.Zero(t, r.TotalSeconds)
		assert.Zero(t, r.Days)
		assert.Equal(t, "expired", r.Text)
	})

	t.Run("long expired stays zeroed", func(t *testing.T) {
		r := RemainingAt(now, now.Add(-48*time.Hour))
		assert.True(t, r.Expired)
		assert.Zero(t, r.TotalSeconds)
	})
}

func TestExtendExpiry(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("adds exact days", func(t *testing.T) {
		got, err := ExtendExpiry(base, 15, 1, 365)
		require.NoError(t, err)
		assert.Equal(t, base.AddDate(0, 0, 15), got)
	})

	t.Run("compounds across calls", func(t *testing.T) {
		first, err := ExtendExpiry(base, 15, 1, 365)
		require.NoError(t, err)
		second, err := ExtendExpiry(first, 10, 1, 365)
		require.NoError(t, err)
		assert.Equal(t, base.AddDate(0, 0, 25), second)
	})

	t.Run("rejects out-of-range days", func(t *testing.T) {
		for _, days := range []int{0, -1, 366, 10000} {
			_, err := ExtendExpiry(base, days, 1, 365)
			assert.Error(t, err, "days=%d", days)
		}
	})

	t.Run("accepts boundary days", func(t *testing.T) {
		for _, days := range []int{1, 365} {
			_, err := ExtendExpiry(base, days, 1, 365)
			assert.NoError(t, err, "days=%d", days)
		}
	})
}
