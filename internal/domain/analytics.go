package domain

// CampaignAnalytics is the aggregate report computed across all campaigns.
//
// DeliveryRate, EngagementRate, and ConversionRate are fixed display values
// carried over from the product dashboard; they are not derived from the
// campaign counters.
type CampaignAnalytics struct {
	TotalCampaigns     int `json:"total_campaigns"`
	ActiveCampaigns    int `json:"active_campaigns"`
	CompletedCampaigns int `json:"completed_campaigns"`

	TotalMessagesSent int `json:"total_messages_sent"`
	TotalRecipients   int `json:"total_recipients"`

	AverageViralScore float64 `json:"average_viral_score"`
	TotalRevenue      float64 `json:"total_revenue"`

	DeliveryRate   float64 `json:"delivery_rate"`
	EngagementRate float64 `json:"engagement_rate"`
	ConversionRate float64 `json:"conversion_rate"`

	EmotionBreakdown []EmotionStats `json:"emotion_breakdown"`
}

// EmotionStats aggregates campaigns sharing one emotion category.
type EmotionStats struct {
	Emotion           string  `json:"emotion"`
	Campaigns         int     `json:"campaigns"`
	AverageViralScore float64 `json:"average_viral_score"`
	Revenue           float64 `json:"revenue"`
	Color             string  `json:"color"`
}
