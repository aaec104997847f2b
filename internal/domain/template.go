package domain

import (
	"time"
)

// MessageTemplate is a reusable SMS message body grouped by emotion category.
// UsageCount increments each time the template is applied to a new campaign;
// the increment is an explicit operation, not wired to campaign creation.
type MessageTemplate struct {
	ID          string   `json:"id" db:"id"`
	Title       string   `json:"title" db:"title"`
	Message     string   `json:"message" db:"message"`
	EmotionType string   `json:"emotion_type" db:"emotion_type"`
	Category    string   `json:"category" db:"category"`
	ViralScore  float64  `json:"viral_score" db:"viral_score"`
	UsageCount  int      `json:"usage_count" db:"usage_count"`
	Rating      float64  `json:"rating" db:"rating"`
	Tags        []string `json:"tags" db:"tags"`
	IsPublic    bool     `json:"is_public" db:"is_public"`
	CreatedBy   string   `json:"created_by" db:"created_by"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
