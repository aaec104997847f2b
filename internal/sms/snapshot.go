package sms

import (
	"time"

	"github.com/flutterbye/sms-engine/internal/domain"
)

// Snapshot is a point-in-time copy of the store's three collections,
// suitable for JSON persistence.
type Snapshot struct {
	Campaigns []domain.Campaign        `json:"campaigns"`
	Contacts  []domain.Contact         `json:"contacts"`
	Templates []domain.MessageTemplate `json:"templates"`
	TakenAt   time.Time                `json:"taken_at"`
}

// Snapshot copies the current store state. Collections are in insertion
// order, oldest first.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Campaigns: make([]domain.Campaign, 0, len(s.campaigns)),
		Contacts:  make([]domain.Contact, 0, len(s.contacts)),
		Templates: make([]domain.MessageTemplate, 0, len(s.templates)),
		TakenAt:   time.Now(),
	}
	for _, c := range s.campaigns {
		snap.Campaigns = append(snap.Campaigns, *c)
	}
	for _, c := range s.contacts {
		snap.Contacts = append(snap.Contacts, *c)
	}
	for _, tpl := range s.templates {
		snap.Templates = append(snap.Templates, *tpl)
	}
	return snap
}

// Restore replaces the store's collections with the snapshot contents.
// In-flight delivery workers do not survive a restart, so campaigns that
// were active at snapshot time come back paused; the operator resumes them
// explicitly.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns = make([]*domain.Campaign, 0, len(snap.Campaigns))
	s.campaignIdx = make(map[string]*domain.Campaign, len(snap.Campaigns))
	for i := range snap.Campaigns {
		c := snap.Campaigns[i]
		if c.Status == domain.CampaignActive {
			c.Status = domain.CampaignPaused
		}
		s.campaigns = append(s.campaigns, &c)
		s.campaignIdx[c.ID] = &c
	}

	s.contacts = make([]*domain.Contact, 0, len(snap.Contacts))
	for i := range snap.Contacts {
		c := snap.Contacts[i]
		s.contacts = append(s.contacts, &c)
	}

	s.templates = make([]*domain.MessageTemplate, 0, len(snap.Templates))
	s.templateIdx = make(map[string]*domain.MessageTemplate, len(snap.Templates))
	for i := range snap.Templates {
		tpl := snap.Templates[i]
		s.templates = append(s.templates, &tpl)
		s.templateIdx[tpl.ID] = &tpl
	}
}
