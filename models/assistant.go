package models

import "time"

// ChatMessage is a single turn in an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatSession holds an in-progress assistant conversation for one tenant's
// booking widget. Sessions live in Redis with a short TTL.
type ChatSession struct {
	ID        string        `json:"id"`
	TenantID  string        `json:"tenantId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
}

// BookingIntent is the structured result the intent parser extracts from a
// free-text chat message. The parser itself is an opaque external service.
type BookingIntent struct {
	Action     string `json:"action"` // "check_availability", "book", or "other"
	Service    string `json:"service,omitempty"`
	Date       string `json:"date,omitempty"` // "YYYY-MM-DD"
	Time       string `json:"time,omitempty"` // "HH:MM"
	ClientName string `json:"clientName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}
