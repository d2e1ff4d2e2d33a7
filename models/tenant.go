package models

// DayHours is a single day's operating window in minutes from midnight
// (e.g., 540 for 9:00 AM). A nil DayHours means the business is closed.
type DayHours struct {
	OpenMinute  int `bson:"openMinute" json:"openMinute"`
	CloseMinute int `bson:"closeMinute" json:"closeMinute"`
}

// WeeklyHours maps weekday index (0 = Sunday, matching time.Weekday) to that
// day's operating window.
type WeeklyHours map[int]*DayHours

// Tenant represents an auto-detailing business account. All booking and client
// data is partitioned by tenant id.
type Tenant struct {
	ID         string `bson:"id" json:"id"`
	Name       string `bson:"name" json:"name"`
	Email      string `bson:"email" json:"email"`
	SecretHash string `bson:"secretHash,omitempty" json:"-"` // bcrypt hash of the tenant API secret

	Timezone    string              `bson:"timezone" json:"timezone"` // IANA name, e.g., "America/New_York"
	Hours       WeeklyHours         `bson:"hours" json:"hours"`
	ClosedDates []string            `bson:"closedDates,omitempty" json:"closedDates,omitempty"` // "YYYY-MM-DD" overrides
	Services    []ServiceDefinition `bson:"services,omitempty" json:"services,omitempty"`
}

// HoursFor returns the operating window for the given weekday and date,
// honoring closed-date overrides. Nil means closed.
func (t *Tenant) HoursFor(weekday int, date string) *DayHours {
	for _, d := range t.ClosedDates {
		if d == date {
			return nil
		}
	}
	return t.Hours[weekday]
}
