// Package sms implements the Flutterbye SMS campaign engine: campaign,
// contact, and template state, the simulated delivery lifecycle, and the
// aggregate analytics report.
package sms

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/flutterbye/sms-engine/internal/domain"
	"github.com/flutterbye/sms-engine/internal/events"
	"github.com/flutterbye/sms-engine/internal/pkg/logger"
	"github.com/flutterbye/sms-engine/internal/scoring"
	"github.com/google/uuid"
)

// Archiver persists campaign records outside the in-memory store. Archiving
// is best-effort: failures are logged and never surface to callers.
type Archiver interface {
	ArchiveCampaign(ctx context.Context, c domain.Campaign) error
	MarkCompleted(ctx context.Context, id string, sent, delivered int) error
}

// Config holds store tuning knobs.
type Config struct {
	// TickInterval is the delivery simulation tick period.
	TickInterval time.Duration
	// MaxBatch is the largest random send increment per tick.
	MaxBatch int
	// PerMessageUSD is the static unit price used for revenue figures.
	PerMessageUSD float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		TickInterval:  2 * time.Second,
		MaxBatch:      10,
		PerMessageUSD: 0.25,
	}
}

// Store owns the campaign, contact, and template collections for the
// lifetime of the process. All access is serialized through an internal
// mutex; getters return copies so callers polling delivery progress never
// observe a campaign mid-mutation.
type Store struct {
	mu        sync.RWMutex
	campaigns []*domain.Campaign
	contacts  []*domain.Contact
	templates []*domain.MessageTemplate

	campaignIdx map[string]*domain.Campaign
	templateIdx map[string]*domain.MessageTemplate

	cfg     Config
	scorer  scoring.Strategy
	tracker events.Tracker
	archive Archiver

	rng *rand.Rand

	// Delivery workers, one per launched campaign.
	runCtx    context.Context
	runCancel context.CancelFunc
	runners   map[string]context.CancelFunc
	wg        sync.WaitGroup
}

// New creates an empty store. A nil scorer falls back to the random
// placeholder strategy; a nil tracker falls back to the log sink.
func New(cfg Config, scorer scoring.Strategy, tracker events.Tracker) *Store {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 2 * time.Second
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = 10
	}
	if cfg.PerMessageUSD <= 0 {
		cfg.PerMessageUSD = 0.25
	}
	if scorer == nil {
		scorer = scoring.NewRandom()
	}
	if tracker == nil {
		tracker = events.LogTracker{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		campaignIdx: make(map[string]*domain.Campaign),
		templateIdx: make(map[string]*domain.MessageTemplate),
		cfg:         cfg,
		scorer:      scorer,
		tracker:     tracker,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		runCtx:      ctx,
		runCancel:   cancel,
		runners:     make(map[string]context.CancelFunc),
	}
}

// SetArchive wires an optional campaign archive. Must be called before the
// store is shared across goroutines.
func (s *Store) SetArchive(a Archiver) { s.archive = a }

// Close stops all delivery workers and waits for them to exit.
func (s *Store) Close() {
	s.runCancel()
	s.wg.Wait()
}

// =============================================================================
// CAMPAIGNS
// =============================================================================

// CreateCampaign creates a campaign from the given input. Missing fields are
// defaulted, never rejected; use input.Validate to surface warnings.
func (s *Store) CreateCampaign(input CampaignInput) domain.Campaign {
	input.normalize()

	now := time.Now()
	status := domain.CampaignDraft
	if input.ScheduledDate != nil {
		status = domain.CampaignScheduled
	}

	s.mu.Lock()
	c := &domain.Campaign{
		ID:              uuid.New().String(),
		Name:            input.Name,
		Message:         input.Message,
		EmotionType:     input.EmotionType,
		TargetAudience:  input.TargetAudience,
		ScheduledDate:   input.ScheduledDate,
		Status:          status,
		TotalRecipients: audienceSize(input.TargetAudience, len(s.contacts)),
		ViralScore:      s.scorer.Score(scoring.KindViral),
		EstimatedReach:  int(s.scorer.Score(scoring.KindReach)),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.campaigns = append(s.campaigns, c)
	s.campaignIdx[c.ID] = c
	out := *c
	s.mu.Unlock()

	s.track(events.EventCampaignCreated, map[string]interface{}{
		"campaign_id":     out.ID,
		"emotion_type":    out.EmotionType,
		"target_audience": out.TargetAudience,
		"estimated_reach": out.EstimatedReach,
	})
	s.archiveCreate(out)

	return out
}

// Campaigns returns all campaigns, most recently created first.
func (s *Store) Campaigns() []domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Campaign, 0, len(s.campaigns))
	for i := len(s.campaigns) - 1; i >= 0; i-- {
		out = append(out, *s.campaigns[i])
	}
	return out
}

// Campaign returns a copy of the campaign, or nil when the id is unknown.
func (s *Store) Campaign(id string) *domain.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaignIdx[id]
	if !ok {
		return nil
	}
	out := *c
	return &out
}

// LaunchCampaign transitions a campaign to active and starts its delivery
// worker. Returns nil when the id is unknown. Launching an already active or
// completed campaign is a no-op returning the current state.
func (s *Store) LaunchCampaign(id string) *domain.Campaign {
	s.mu.Lock()
	c, ok := s.campaignIdx[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if c.Status == domain.CampaignActive || c.Status == domain.CampaignCompleted {
		out := *c
		s.mu.Unlock()
		return &out
	}

	c.Status = domain.CampaignActive
	c.UpdatedAt = time.Now()

	// A paused campaign still has its worker; don't start a second one.
	if _, running := s.runners[c.ID]; !running {
		ctx, cancel := context.WithCancel(s.runCtx)
		s.runners[c.ID] = cancel
		s.wg.Add(1)
		go s.runDelivery(ctx, c.ID)
	}

	out := *c
	s.mu.Unlock()

	s.track(events.EventCampaignLaunched, map[string]interface{}{
		"campaign_id":      out.ID,
		"total_recipients": out.TotalRecipients,
	})

	return &out
}

// PauseCampaign moves an active campaign to paused. Its delivery worker
// stays alive but stops consuming ticks. Returns nil when the id is unknown.
func (s *Store) PauseCampaign(id string) *domain.Campaign {
	return s.setStatus(id, domain.CampaignActive, domain.CampaignPaused)
}

// ResumeCampaign moves a paused campaign back to active; delivery continues
// from the current counters. A campaign restored from a snapshot has no
// worker, so resume starts one if needed. Returns nil when the id is unknown.
func (s *Store) ResumeCampaign(id string) *domain.Campaign {
	s.mu.Lock()
	c, ok := s.campaignIdx[id]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if c.Status == domain.CampaignPaused {
		c.Status = domain.CampaignActive
		c.UpdatedAt = time.Now()
		if _, running := s.runners[id]; !running {
			ctx, cancel := context.WithCancel(s.runCtx)
			s.runners[id] = cancel
			s.wg.Add(1)
			go s.runDelivery(ctx, id)
		}
	}
	out := *c
	s.mu.Unlock()
	return &out
}

// setStatus transitions from → to, leaving the campaign untouched when it is
// in any other state.
func (s *Store) setStatus(id string, from, to domain.CampaignStatus) *domain.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaignIdx[id]
	if !ok {
		return nil
	}
	if c.Status == from {
		c.Status = to
		c.UpdatedAt = time.Now()
	}
	out := *c
	return &out
}

// =============================================================================
// CONTACTS
// =============================================================================

// AddContact inserts a contact. Missing fields are defaulted, never rejected.
func (s *Store) AddContact(input ContactInput) domain.Contact {
	input.normalize()

	s.mu.Lock()
	c := &domain.Contact{
		ID:              uuid.New().String(),
		PhoneNumber:     input.PhoneNumber,
		Name:            input.Name,
		Tags:            input.Tags,
		LastContact:     input.LastContact,
		EngagementScore: s.scorer.Score(scoring.KindEngagement),
		CreatedAt:       time.Now(),
	}
	s.contacts = append(s.contacts, c)
	out := *c
	s.mu.Unlock()

	s.track(events.EventContactAdded, map[string]interface{}{
		"contact_id": out.ID,
		"tags":       len(out.Tags),
	})

	return out
}

// Contacts returns all contacts, most recently created first.
func (s *Store) Contacts() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Contact, 0, len(s.contacts))
	for i := len(s.contacts) - 1; i >= 0; i-- {
		out = append(out, *s.contacts[i])
	}
	return out
}

// ContactCount returns the current contact pool size.
func (s *Store) ContactCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// =============================================================================
// TEMPLATES
// =============================================================================

// CreateTemplate creates a message template. Missing fields are defaulted.
func (s *Store) CreateTemplate(input TemplateInput) domain.MessageTemplate {
	input.normalize()

	s.mu.Lock()
	tpl := &domain.MessageTemplate{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Message:     input.Message,
		EmotionType: input.EmotionType,
		Category:    input.Category,
		ViralScore:  s.scorer.Score(scoring.KindViral),
		UsageCount:  0,
		Rating:      s.scorer.Score(scoring.KindRating),
		Tags:        input.Tags,
		IsPublic:    input.IsPublic,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   time.Now(),
	}
	s.templates = append(s.templates, tpl)
	s.templateIdx[tpl.ID] = tpl
	out := *tpl
	s.mu.Unlock()

	s.track(events.EventTemplateCreated, map[string]interface{}{
		"template_id":  out.ID,
		"emotion_type": out.EmotionType,
	})

	return out
}

// Templates returns all templates, most used first.
func (s *Store) Templates() []domain.MessageTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MessageTemplate, 0, len(s.templates))
	for _, tpl := range s.templates {
		out = append(out, *tpl)
	}
	// Stable so equal usage counts keep insertion order.
	sortTemplatesByUsage(out)
	return out
}

// Template returns a copy of the template, or nil when the id is unknown.
func (s *Store) Template(id string) *domain.MessageTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templateIdx[id]
	if !ok {
		return nil
	}
	out := *tpl
	return &out
}

// IncrementTemplateUsage bumps a template's usage counter. Unknown ids are a
// silent no-op.
func (s *Store) IncrementTemplateUsage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tpl, ok := s.templateIdx[id]; ok {
		tpl.UsageCount++
	}
}

// =============================================================================
// INTERNAL
// =============================================================================

func sortTemplatesByUsage(templates []domain.MessageTemplate) {
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].UsageCount > templates[j].UsageCount
	})
}

// audienceSize maps an audience selector to a recipient count. This is a
// static percentage of the current contact pool, not a live tag query.
func audienceSize(audience string, contactCount int) int {
	switch audience {
	case domain.AudienceHighEngagement:
		return contactCount * 60 / 100
	case domain.AudienceRecentActivity:
		return contactCount * 40 / 100
	case domain.AudienceNewContacts:
		return contactCount * 30 / 100
	default: // "all" and unknown selectors
		return contactCount
	}
}

// track delivers a business event. Tracker failures are contained here so a
// broken analytics sink can never abort a campaign operation.
func (s *Store) track(eventType string, data map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.tracker.TrackBusinessEvent(ctx, eventType, data); err != nil {
		logger.Warn("business event tracking failed", "event_type", eventType, "error", err)
	}
}

func (s *Store) archiveCreate(c domain.Campaign) {
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.archive.ArchiveCampaign(ctx, c); err != nil {
		logger.Warn("campaign archive failed", "campaign_id", c.ID, "error", err)
	}
}

func (s *Store) archiveComplete(c domain.Campaign) {
	if s.archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.archive.MarkCompleted(ctx, c.ID, c.SentCount, c.DeliveredCount); err != nil {
		logger.Warn("campaign archive update failed", "campaign_id", c.ID, "error", err)
	}
}
