package domain

import (
	"time"
)

// Contact is a single SMS recipient. Contacts are read-only after insertion;
// there are no lifecycle transitions beyond creation.
type Contact struct {
	ID          string     `json:"id" db:"id"`
	PhoneNumber string     `json:"phone_number" db:"phone_number"`
	Name        string     `json:"name" db:"name"`
	Tags        []string   `json:"tags" db:"tags"`
	LastContact *time.Time `json:"last_contact" db:"last_contact"`

	// EngagementScore is 60-100 at creation, assigned by the scoring strategy.
	EngagementScore float64 `json:"engagement_score" db:"engagement_score"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
