package domain

import (
	"time"
)

// CampaignStatus enumerates the lifecycle states of an SMS campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Audience selector keys. Anything else falls back to the full contact pool.
const (
	AudienceAll            = "all"
	AudienceHighEngagement = "high_engagement"
	AudienceRecentActivity = "recent_activity"
	AudienceNewContacts    = "new_contacts"
)

// Campaign represents a single SMS-style outbound messaging effort.
type Campaign struct {
	ID             string         `json:"id" db:"id"`
	Name           string         `json:"name" db:"name"`
	Message        string         `json:"message" db:"message"`
	EmotionType    string         `json:"emotion_type" db:"emotion_type"`
	TargetAudience string         `json:"target_audience" db:"target_audience"`
	ScheduledDate  *time.Time     `json:"scheduled_date" db:"scheduled_date"`
	Status         CampaignStatus `json:"status" db:"status"`

	// Delivery counters maintained by the delivery worker. The invariant
	// 0 <= DeliveredCount <= SentCount <= TotalRecipients holds at all times.
	TotalRecipients int `json:"total_recipients" db:"total_recipients"`
	SentCount       int `json:"sent_count" db:"sent_count"`
	DeliveredCount  int `json:"delivered_count" db:"delivered_count"`

	// ViralScore (0-100) and EstimatedReach come from the injected scoring
	// strategy; the default implementation is a uniform-random placeholder.
	ViralScore     float64 `json:"viral_score" db:"viral_score"`
	EstimatedReach int     `json:"estimated_reach" db:"estimated_reach"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsTerminal returns true if the campaign is in a final state.
func (c *Campaign) IsTerminal() bool {
	return c.Status == CampaignCompleted
}

// Remaining returns how many recipients have not been sent to yet.
func (c *Campaign) Remaining() int {
	return c.TotalRecipients - c.SentCount
}
