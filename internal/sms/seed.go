package sms

import (
	"time"

	"github.com/flutterbye/sms-engine/internal/domain"
)

// SeedDemoData populates the store with a fixed set of example campaigns,
// contacts, and templates. This is a convenience for a running demo, not a
// contract consumers should depend on. Seeded entities bypass event tracking
// and the scoring strategy so the data is deterministic.
func (s *Store) SeedDemoData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	contacts := []*domain.Contact{
		{
			ID:              "contact_demo_1",
			PhoneNumber:     "+15551234567",
			Name:            "Maya R.",
			Tags:            []string{"vip", "early_adopter"},
			EngagementScore: 92,
			CreatedAt:       now.Add(-72 * time.Hour),
		},
		{
			ID:              "contact_demo_2",
			PhoneNumber:     "+15559876543",
			Name:            "Devon K.",
			Tags:            []string{"new"},
			EngagementScore: 71,
			CreatedAt:       now.Add(-48 * time.Hour),
		},
		{
			ID:              "contact_demo_3",
			PhoneNumber:     "+15550001122",
			Name:            "Ash P.",
			Tags:            []string{"vip"},
			EngagementScore: 84,
			CreatedAt:       now.Add(-24 * time.Hour),
		},
	}
	s.contacts = append(s.contacts, contacts...)

	campaigns := []*domain.Campaign{
		{
			ID:              "campaign_demo_1",
			Name:            "Valentine Token Drop",
			Message:         "Someone minted you a love token! Claim it before midnight.",
			EmotionType:     "love",
			TargetAudience:  domain.AudienceAll,
			Status:          domain.CampaignCompleted,
			TotalRecipients: 3,
			SentCount:       3,
			DeliveredCount:  2,
			ViralScore:      94,
			EstimatedReach:  8200,
			CreatedAt:       now.Add(-48 * time.Hour),
			UpdatedAt:       now.Add(-47 * time.Hour),
		},
		{
			ID:              "campaign_demo_2",
			Name:            "Gratitude Friday",
			Message:         "A small thank-you goes a long way. Here's 27 characters of it.",
			EmotionType:     "gratitude",
			TargetAudience:  domain.AudienceHighEngagement,
			Status:          domain.CampaignDraft,
			TotalRecipients: 1,
			ViralScore:      81,
			EstimatedReach:  3400,
			CreatedAt:       now.Add(-12 * time.Hour),
			UpdatedAt:       now.Add(-12 * time.Hour),
		},
	}
	for _, c := range campaigns {
		s.campaigns = append(s.campaigns, c)
		s.campaignIdx[c.ID] = c
	}

	templates := []*domain.MessageTemplate{
		{
			ID:          "template_demo_1",
			Title:       "Midnight Love Note",
			Message:     "Thinking of you. This one's minted forever.",
			EmotionType: "love",
			Category:    "romance",
			ViralScore:  96,
			UsageCount:  42,
			Rating:      4.9,
			Tags:        []string{"popular", "evening"},
			IsPublic:    true,
			CreatedBy:   "flutterbye",
			CreatedAt:   now.Add(-96 * time.Hour),
		},
		{
			ID:          "template_demo_2",
			Title:       "Monday Motivation",
			Message:     "27 characters of pure momentum. Go get it.",
			EmotionType: "motivation",
			Category:    "work",
			ViralScore:  83,
			UsageCount:  17,
			Rating:      4.6,
			Tags:        []string{"morning"},
			IsPublic:    true,
			CreatedBy:   "flutterbye",
			CreatedAt:   now.Add(-80 * time.Hour),
		},
		{
			ID:          "template_demo_3",
			Title:       "Simple Thanks",
			Message:     "Thank you. That's it. That's the message.",
			EmotionType: "gratitude",
			Category:    "personal",
			ViralScore:  77,
			UsageCount:  8,
			Rating:      4.7,
			Tags:        []string{},
			IsPublic:    false,
			CreatedBy:   "flutterbye",
			CreatedAt:   now.Add(-60 * time.Hour),
		},
	}
	for _, tpl := range templates {
		s.templates = append(s.templates, tpl)
		s.templateIdx[tpl.ID] = tpl
	}
}
