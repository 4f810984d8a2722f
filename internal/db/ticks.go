package db

import (
	"context"
	"fmt"
	"time"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"
)

const maxListTicks = 500

// RecordTick appends one poll tick to the journal
func (s *PostgresStore) RecordTick(ctx context.Context, tick models.PollTick) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO poll_ticks (id, resource, started_at, duration_ms, success, error, sync_in_progress, next_delay_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`,
		tick.ID,
		tick.Resource,
		tick.StartedAt,
		tick.Duration.Milliseconds(),
		tick.Success,
		tick.Error,
		tick.SyncInProgress,
		tick.NextDelay.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record poll tick: %w", err)
	}
	return nil
}

// ListTicks returns the most recent ticks of resource, or of all resources when empty
func (s *PostgresStore) ListTicks(ctx context.Context, resource string, limit int) ([]models.PollTick, error) {
	if limit <= 0 || limit > maxListTicks {
		limit = maxListTicks
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, resource, started_at, duration_ms, success, error, sync_in_progress, next_delay_ms
		FROM poll_ticks
		WHERE ($1::text = '' OR resource = $1::text)
		ORDER BY started_at DESC
		LIMIT $2
	`, resource, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query poll ticks: %w", err)
	}
	defer rows.Close()

	ticks := []models.PollTick{}
	for rows.Next() {
		var (
			tick       models.PollTick
			durationMS int64
			nextMS     int64
		)
		if err := rows.Scan(
			&tick.ID,
			&tick.Resource,
			&tick.StartedAt,
			&durationMS,
			&tick.Success,
			&tick.Error,
			&tick.SyncInProgress,
			&nextMS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll tick row: %w", err)
		}
		tick.Duration = time.Duration(durationMS) * time.Millisecond
		tick.NextDelay = time.Duration(nextMS) * time.Millisecond
		ticks = append(ticks, tick)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating poll tick rows: %w", err)
	}

	return ticks, nil
}

// PruneTicks deletes ticks that started before the given time
func (s *PostgresStore) PruneTicks(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM poll_ticks WHERE started_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune poll ticks: %w", err)
	}
	return result.RowsAffected()
}
