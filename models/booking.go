package models

import "time"

// BookingStatus is the lifecycle state of a booking. Only scheduled bookings
// occupy a time slot.
type BookingStatus string

const (
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingScheduled, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. Terminal bookings never return
// to scheduled.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Booking represents a confirmed appointment record.
type Booking struct {
	ID       string `bson:"id" json:"id"`             // Unique booking identifier (UUID)
	TenantID string `bson:"tenantId" json:"tenantId"` // Owning tenant; every query filters by this
	ClientID string `bson:"clientId,omitempty" json:"clientId,omitempty"`

	// Inline contact details for public (anonymous) bookings without a client record.
	ClientName  string `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ClientEmail string `bson:"clientEmail,omitempty" json:"clientEmail,omitempty"`
	ClientPhone string `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`

	DateTime time.Time `bson:"dateTime" json:"dateTime"` // Start of service
	EndTime  time.Time `bson:"endTime" json:"endTime"`   // Denormalized DateTime + duration, kept for range queries

	Service         string  `bson:"service" json:"service"`                 // Service name at booking time
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"` // Snapshot; catalog changes never rewrite history
	Price           float64 `bson:"price" json:"price"`                     // Snapshot

	Status    BookingStatus `bson:"status" json:"status"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// End returns the exclusive end of the booking's occupied interval
// [DateTime, DateTime+duration).
func (b *Booking) End() time.Time {
	return b.DateTime.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// BookingInput is the payload for creating a booking.
type BookingInput struct {
	TenantID    string    `json:"tenantId"`
	ClientID    string    `json:"clientId,omitempty"`
	ClientName  string    `json:"clientName,omitempty"`
	ClientEmail string    `json:"clientEmail,omitempty"`
	ClientPhone string    `json:"clientPhone,omitempty"`
	DateTime    time.Time `json:"dateTime" binding:"required"`
	Service     string    `json:"service" binding:"required"`
	Notes       string    `json:"notes,omitempty"`
}
