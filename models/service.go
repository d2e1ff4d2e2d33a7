package models

// ServiceDefinition describes a detailing service a tenant offers.
type ServiceDefinition struct {
	Name            string  `bson:"name" json:"name"`                       // e.g., "Full Detailing"
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"` // fixed per service, positive
	Price           float64 `bson:"price" json:"price"`
	Description     string  `bson:"description,omitempty" json:"description,omitempty"`
}
