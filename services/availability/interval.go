package availability

import (
	"time"

	"detailify/models"
)

// Overlaps reports whether the half-open intervals [a0,a1) and [b0,b1)
// intersect. A booking ending exactly when another starts does not conflict.
func Overlaps(a0, a1, b0, b1 time.Time) bool {
	return a0.Before(b1) && b0.Before(a1)
}

// overlapsAny reports whether [start,end) intersects any booking's occupied
// interval, skipping the booking identified by excludeID (used when a booking
// is rescheduled so it does not conflict with itself).
func overlapsAny(start, end time.Time, bookings []models.Booking, excludeID string) bool {
	for i := range bookings {
		b := &bookings[i]
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if Overlaps(start, end, b.DateTime, b.End()) {
			return true
		}
	}
	return false
}
