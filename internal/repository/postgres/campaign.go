// Package postgres archives campaign records for reporting outside the
// in-memory store.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/flutterbye/sms-engine/internal/domain"
)

// CampaignArchive implements the store's Archiver against PostgreSQL.
type CampaignArchive struct{ db *sql.DB }

// NewCampaignArchive creates a Postgres-backed campaign archive.
func NewCampaignArchive(db *sql.DB) *CampaignArchive { return &CampaignArchive{db: db} }

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ArchiveCampaign upserts one campaign row. Called on creation and kept
// idempotent so snapshot restores can re-archive safely.
func (a *CampaignArchive) ArchiveCampaign(ctx context.Context, c domain.Campaign) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO sms_campaigns
			(id, name, message, emotion_type, target_audience, status,
			 total_recipients, sent_count, delivered_count, viral_score,
			 estimated_reach, scheduled_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			sent_count = EXCLUDED.sent_count,
			delivered_count = EXCLUDED.delivered_count,
			updated_at = EXCLUDED.updated_at
	`, c.ID, c.Name, c.Message, c.EmotionType, c.TargetAudience, c.Status,
		c.TotalRecipients, c.SentCount, c.DeliveredCount, c.ViralScore,
		c.EstimatedReach, c.ScheduledDate, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("archive campaign: %w", err)
	}
	return nil
}

// MarkCompleted records the final delivery counters for a campaign.
func (a *CampaignArchive) MarkCompleted(ctx context.Context, id string, sent, delivered int) error {
	res, err := a.db.ExecContext(ctx, `
		UPDATE sms_campaigns
		SET status = $2, sent_count = $3, delivered_count = $4, updated_at = NOW()
		WHERE id = $1
	`, id, domain.CampaignCompleted, sent, delivered)
	if err != nil {
		return fmt.Errorf("mark campaign completed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark campaign completed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mark campaign completed: campaign %s not archived", id)
	}
	return nil
}

// Recent returns the most recently updated archived campaigns.
func (a *CampaignArchive) Recent(ctx context.Context, limit int) ([]domain.Campaign, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, name, message, emotion_type, target_audience, status,
		       total_recipients, sent_count, delivered_count, viral_score,
		       estimated_reach, created_at, updated_at
		FROM sms_campaigns
		ORDER BY updated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list archived campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Message, &c.EmotionType, &c.TargetAudience, &c.Status,
			&c.TotalRecipients, &c.SentCount, &c.DeliveredCount, &c.ViralScore,
			&c.EstimatedReach, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan archived campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
