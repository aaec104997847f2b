package sms

import (
	"context"
	"time"

	"github.com/flutterbye/sms-engine/internal/domain"
	"github.com/flutterbye/sms-engine/internal/events"
	"github.com/flutterbye/sms-engine/internal/pkg/logger"
)

// deliveredRate models carrier delivery success per send batch.
const deliveredRate = 0.98

// runDelivery is the per-campaign delivery worker. One goroutine per
// launched campaign; it exits when the campaign completes or the store
// shuts down. Paused campaigns keep their worker but skip ticks, so resume
// continues from the current counters.
func (s *Store) runDelivery(ctx context.Context, id string) {
	defer s.wg.Done()
	defer s.releaseRunner(id)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := s.deliveryTick(id); done {
				return
			}
		}
	}
}

// deliveryTick applies one send increment. Returns true when the worker
// should stop. The increment keeps deliveredCount <= sentCount <=
// totalRecipients at every step.
func (s *Store) deliveryTick(id string) bool {
	s.mu.Lock()
	c, ok := s.campaignIdx[id]
	if !ok {
		s.mu.Unlock()
		return true
	}
	switch c.Status {
	case domain.CampaignPaused:
		s.mu.Unlock()
		return false
	case domain.CampaignActive:
		// fall through to the send increment
	default:
		s.mu.Unlock()
		return true
	}

	increment := s.rng.Intn(s.cfg.MaxBatch) + 1
	if remaining := c.Remaining(); increment > remaining {
		increment = remaining
	}

	c.SentCount += increment
	c.DeliveredCount += int(float64(increment) * deliveredRate)
	c.UpdatedAt = time.Now()

	completed := c.SentCount >= c.TotalRecipients
	if completed {
		c.Status = domain.CampaignCompleted
	}
	out := *c
	s.mu.Unlock()

	if completed {
		logger.Info("campaign completed",
			"campaign_id", out.ID,
			"sent", out.SentCount,
			"delivered", out.DeliveredCount)
		s.track(events.EventCampaignCompleted, map[string]interface{}{
			"campaign_id": out.ID,
			"sent":        out.SentCount,
			"delivered":   out.DeliveredCount,
		})
		s.archiveComplete(out)
	}
	return completed
}

// releaseRunner drops the cancellation handle once a worker exits.
func (s *Store) releaseRunner(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.runners[id]; ok {
		cancel()
		delete(s.runners, id)
	}
}
