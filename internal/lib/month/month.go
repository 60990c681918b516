// Package month contains the calendar arithmetic behind subscription
// extension and reminder due-date distances.
package month

import (
	"time"
)

// ExtendSubscription returns the subscription end date after a verified
// payment of the given number of months. The extension is additive: the
// base is whichever is later of now and the current end date, so an
// active subscription extends rather than resets.
func ExtendSubscription(now time.Time, currentEnd *time.Time, months int) time.Time {
	base := now
	if currentEnd != nil && currentEnd.After(now) {
		base = *currentEnd
	}
	return base.AddDate(0, months, 0)
}

// DaysUntil returns the number of whole days from today until due,
// rounding partial days up. Due dates in the past yield negative values.
func DaysUntil(today, due time.Time) int {
	diff := due.Sub(today)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
