package sms

import (
	"sort"

	"github.com/flutterbye/sms-engine/internal/domain"
)

// Fixed display rates carried over from the product dashboard. These are
// shown as-is and are not derived from the campaign counters.
const (
	displayDeliveryRate   = 98.7
	displayEngagementRate = 67.4
	displayConversionRate = 23.8
)

// emotionColors keys dashboard colors by emotion category.
var emotionColors = map[string]string{
	"love":       "#EC4899",
	"joy":        "#F59E0B",
	"gratitude":  "#10B981",
	"apology":    "#8B5CF6",
	"motivation": "#EF4444",
	"message":    "#6B7280",
}

// neutralColor is the fallback for emotions without a configured color.
const neutralColor = "#9CA3AF"

// Analytics computes the aggregate report across all campaigns.
func (s *Store) Analytics() domain.CampaignAnalytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := domain.CampaignAnalytics{
		TotalCampaigns: len(s.campaigns),
		DeliveryRate:   displayDeliveryRate,
		EngagementRate: displayEngagementRate,
		ConversionRate: displayConversionRate,
	}

	type emotionAgg struct {
		campaigns  int
		viralTotal float64
		sent       int
	}
	byEmotion := make(map[string]*emotionAgg)

	var viralTotal float64
	for _, c := range s.campaigns {
		switch c.Status {
		case domain.CampaignActive:
			report.ActiveCampaigns++
		case domain.CampaignCompleted:
			report.CompletedCampaigns++
		}
		report.TotalMessagesSent += c.SentCount
		report.TotalRecipients += c.TotalRecipients
		viralTotal += c.ViralScore

		agg, ok := byEmotion[c.EmotionType]
		if !ok {
			agg = &emotionAgg{}
			byEmotion[c.EmotionType] = agg
		}
		agg.campaigns++
		agg.viralTotal += c.ViralScore
		agg.sent += c.SentCount
	}

	if len(s.campaigns) > 0 {
		report.AverageViralScore = viralTotal / float64(len(s.campaigns))
	}
	report.TotalRevenue = float64(report.TotalMessagesSent) * s.cfg.PerMessageUSD

	report.EmotionBreakdown = make([]domain.EmotionStats, 0, len(byEmotion))
	for emotion, agg := range byEmotion {
		color, ok := emotionColors[emotion]
		if !ok {
			color = neutralColor
		}
		report.EmotionBreakdown = append(report.EmotionBreakdown, domain.EmotionStats{
			Emotion:           emotion,
			Campaigns:         agg.campaigns,
			AverageViralScore: agg.viralTotal / float64(agg.campaigns),
			Revenue:           float64(agg.sent) * s.cfg.PerMessageUSD,
			Color:             color,
		})
	}
	// Map iteration order is random; keep the report stable for consumers.
	sort.Slice(report.EmotionBreakdown, func(i, j int) bool {
		return report.EmotionBreakdown[i].Emotion < report.EmotionBreakdown[j].Emotion
	})

	return report
}
