package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/coverage-monitor/internal/models"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store defines the interface for the poll tick journal
type Store interface {
	RecordTick(ctx context.Context, tick models.PollTick) error
	ListTicks(ctx context.Context, resource string, limit int) ([]models.PollTick, error)
	PruneTicks(ctx context.Context, before time.Time) (int64, error)
}

type PostgresStore struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewPostgresStore(connectionString string, logger *logrus.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db, logger: logger}, nil
}

// Migrate applies the embedded schema migrations
func (s *PostgresStore) Migrate() error {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// StartRetention periodically deletes ticks older than retention
func (s *PostgresStore) StartRetention(ctx context.Context, retention, interval time.Duration) {
	if retention <= 0 || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pruned, err := s.PruneTicks(ctx, time.Now().Add(-retention))
				if err != nil {
					if ctx.Err() == nil {
						s.logger.WithError(err).Warn("Failed to prune poll ticks")
					}
					continue
				}
				if pruned > 0 {
					s.logger.WithFields(logrus.Fields{
						"pruned": pruned,
						"action": "prune_ticks",
					}).Info("Pruned old poll ticks")
				}
			}
		}
	}()
}
