// Package events delivers business events to an analytics collaborator.
// Callers treat tracking as fire-and-forget: a failing sink must never block
// or abort the business operation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/flutterbye/sms-engine/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Business event types emitted by the campaign store.
const (
	EventCampaignCreated   = "sms_campaign_created"
	EventCampaignLaunched  = "sms_campaign_launched"
	EventCampaignCompleted = "sms_campaign_completed"
	EventContactAdded      = "sms_contact_added"
	EventTemplateCreated   = "sms_template_created"
)

// Tracker records a business event with free-form payload data.
type Tracker interface {
	TrackBusinessEvent(ctx context.Context, eventType string, data map[string]interface{}) error
}

// LogTracker writes events to the structured log. This is the default sink.
type LogTracker struct{}

// TrackBusinessEvent logs the event at INFO level. Never fails.
func (LogTracker) TrackBusinessEvent(_ context.Context, eventType string, data map[string]interface{}) error {
	payload, _ := json.Marshal(data)
	logger.Info("business event", "event_type", eventType, "data", string(payload))
	return nil
}

// RedisTracker appends events to a Redis stream for downstream analytics
// consumers.
type RedisTracker struct {
	client *redis.Client
	stream string
}

// NewRedisTracker creates a tracker publishing to the given stream.
func NewRedisTracker(client *redis.Client, stream string) *RedisTracker {
	return &RedisTracker{client: client, stream: stream}
}

// TrackBusinessEvent XADDs one entry per event. The payload is flattened to
// string fields so stream consumers don't need to parse nested JSON.
func (t *RedisTracker) TrackBusinessEvent(ctx context.Context, eventType string, data map[string]interface{}) error {
	values := map[string]interface{}{"event_type": eventType}
	for k, v := range data {
		values[k] = fmt.Sprintf("%v", v)
	}

	if err := t.client.XAdd(ctx, &redis.XAddArgs{
		Stream: t.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", t.stream, err)
	}
	return nil
}
