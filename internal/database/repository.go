package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"x-impressions/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS view_snapshots (
	id          BIGSERIAL PRIMARY KEY,
	post_url    TEXT        NOT NULL,
	impressions TEXT        NOT NULL,
	views       BIGINT,
	method      TEXT        NOT NULL,
	scraped_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS view_snapshots_post_url_idx ON view_snapshots (post_url, scraped_at DESC);`

type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour

	// Supabase pooler (PgBouncer, transaction mode) cannot hold prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema creates the snapshot table if it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordSnapshot inserts a reading and fills in its ID.
func (r *Repository) RecordSnapshot(ctx context.Context, snap *models.ViewSnapshot) (*models.ViewSnapshot, error) {
	query := `
		INSERT INTO view_snapshots (post_url, impressions, views, method, scraped_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, scraped_at`

	err := r.db.QueryRow(ctx, query, snap.PostURL, snap.Impressions, snap.Views, snap.Method, snap.ScrapedAt).
		Scan(&snap.ID, &snap.ScrapedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record snapshot: %w", err)
	}
	return snap, nil
}

// LatestSnapshot returns the most recent reading for postURL, or nil if there is none.
func (r *Repository) LatestSnapshot(ctx context.Context, postURL string) (*models.ViewSnapshot, error) {
	var snap models.ViewSnapshot
	query := `
		SELECT id, post_url, impressions, views, method, scraped_at
		FROM view_snapshots
		WHERE post_url = $1
		ORDER BY scraped_at DESC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, postURL).
		Scan(&snap.ID, &snap.PostURL, &snap.Impressions, &snap.Views, &snap.Method, &snap.ScrapedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &snap, nil
}
