// Package storage persists reasoning runs in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

// Analysis is one stored reasoning run. Result holds the full reasoning
// output as JSON.
type Analysis struct {
	ID         uuid.UUID       `json:"id"`
	AccountID  uuid.UUID       `json:"account_id"`
	Text       string          `json:"text"`
	Result     json.RawMessage `json:"result"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AnalysisRepository defines the interface for analysis persistence.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *Analysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*Analysis, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostgresAnalysisRepository implements AnalysisRepository using PostgreSQL.
type PostgresAnalysisRepository struct {
	db *sql.DB
}

// NewPostgresAnalysisRepository creates a new PostgreSQL analysis repository.
func NewPostgresAnalysisRepository(db *sql.DB) *PostgresAnalysisRepository {
	return &PostgresAnalysisRepository{db: db}
}

// Create inserts a new analysis, assigning it a fresh UUID and timestamp.
func (r *PostgresAnalysisRepository) Create(ctx context.Context, analysis *Analysis) error {
	analysis.ID = uuid.New()
	analysis.CreatedAt = time.Now()

	query := `
		INSERT INTO analyses (id, account_id, text, result, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.AccountID,
		analysis.Text,
		analysis.Result,
		analysis.Confidence,
		analysis.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	return nil
}

// GetByID retrieves one analysis.
func (r *PostgresAnalysisRepository) GetByID(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	query := `
		SELECT id, account_id, text, result, confidence, created_at
		FROM analyses
		WHERE id = $1
	`

	analysis := &Analysis{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&analysis.ID,
		&analysis.AccountID,
		&analysis.Text,
		&analysis.Result,
		&analysis.Confidence,
		&analysis.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	return analysis, nil
}

// ListByAccount returns an account's analyses, newest first.
func (r *PostgresAnalysisRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Analysis, error) {
	query := `
		SELECT id, account_id, text, result, confidence, created_at
		FROM analyses
		WHERE account_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]Analysis, 0)
	for rows.Next() {
		var analysis Analysis
		if err := rows.Scan(
			&analysis.ID,
			&analysis.AccountID,
			&analysis.Text,
			&analysis.Result,
			&analysis.Confidence,
			&analysis.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return analyses, nil
}

// Delete removes one analysis.
func (r *PostgresAnalysisRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if affected == 0 {
		return ErrAnalysisNotFound
	}

	return nil
}
