package services

import (
	"fmt"
	"time"
)

// Remaining describes how long a file has left before expiry. Expired
// files report zeroed components; they stay downloadable regardless.
type Remaining struct {
	Expired      bool
	TotalSeconds int64
	Days         int
	Hours        int
	Minutes      int
	Text         string
}

// RemainingAt classifies a record's lifecycle at the given instant.
func RemainingAt(now, expiresAt time.Time) Remaining {
	total := int64(expiresAt.Sub(now) / time.Second)
	if total <= 0 {
		return Remaining{Expired: true, Text: "expired"}
	}

	days := int(total / (24 * 3600))
	hours := int(total % (24 * 3600) / 3600)
	minutes := int(total % 3600 / 60)

	var text string
	switch {
	case days > 0:
		text = fmt.Sprintf("%dd", days)
	case hours > 0:
		text = fmt.Sprintf("%dh%dm", hours, minutes)
	default:
		text = fmt.Sprintf("%dm", minutes)
	}

	return Remaining{
		TotalSeconds: total,
		Days:         days,
		Hours:        hours,
		Minutes:      minutes,
		Text:         text,
	}
}

// ExtendExpiry pushes an expiry timestamp forward by whole days. The
// new deadline compounds from the current one, never from "now", so
// repeated extensions keep the original schedule. Days outside the
// inclusive [minDays, maxDays] range are a client error, not clamped.
func ExtendExpiry(expiresAt time.Time, days, minDays, maxDays int) (time.Time, error) {
	if days < minDays || days > maxDays {
		return time.Time{}, fmt.Errorf("extension days must be between %d and %d", minDays, maxDays)
	}
	return expiresAt.AddDate(0, 0, days), nil
}
