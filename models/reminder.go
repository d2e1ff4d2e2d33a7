package models

// ReminderPayload is the asynq task payload for an appointment reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	TenantID  string `json:"tenantId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
