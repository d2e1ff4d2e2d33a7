package models

// TimeSlot is a candidate booking start time within a day's operating hours.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM" in the tenant's timezone
	Available bool   `json:"available"`
}

// ConflictResult is the outcome of a booking conflict check.
type ConflictResult struct {
	HasConflict bool   `json:"hasConflict"`
	Message     string `json:"message,omitempty"`
}
