package casereview

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no report document exists for a case ID.
var ErrNotFound = errors.New("case report not found")

// Repository is the document store for report documents, keyed by case ID.
// Set overwrites the whole document; UpdateAnalysis and UpdateChat patch the
// only two fields that mutate after assembly. None of the writes retry: a
// failed write is surfaced to the caller, never re-attempted.
type Repository interface {
	Set(ctx context.Context, caseID string, doc *Document) error
	Get(ctx context.Context, caseID string) (*Document, error)
	List(ctx context.Context) (map[string]*Document, error)
	UpdateAnalysis(ctx context.Context, caseID, text string) error
	UpdateChat(ctx context.Context, caseID string, chat []ChatTurn) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Set(ctx context.Context, caseID string, doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal report document: %w", err)
	}

	query := `
		INSERT INTO case_reports (case_id, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (case_id) DO UPDATE SET
			doc = EXCLUDED.doc,
			updated_at = EXCLUDED.updated_at
	`
	_, err = r.db.ExecContext(ctx, query, caseID, string(raw), time.Now())
	return err
}

func (r *postgresRepo) Get(ctx context.Context, caseID string) (*Document, error) {
	query := `SELECT doc FROM case_reports WHERE case_id = $1`

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, caseID).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report document: %w", err)
	}
	return &doc, nil
}

func (r *postgresRepo) List(ctx context.Context) (map[string]*Document, error) {
	query := `SELECT case_id, doc FROM case_reports ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make(map[string]*Document)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report document %s: %w", id, err)
		}
		docs[id] = &doc
	}
	return docs, rows.Err()
}

func (r *postgresRepo) UpdateAnalysis(ctx context.Context, caseID, text string) error {
	query := `
		UPDATE case_reports
		SET doc = jsonb_set(doc, ARRAY['Análisis Deliberativo (IA)'], to_jsonb($2::text), true),
		    updated_at = $3
		WHERE case_id = $1
	`
	return r.patch(ctx, query, caseID, text)
}

func (r *postgresRepo) UpdateChat(ctx context.Context, caseID string, chat []ChatTurn) error {
	raw, err := json.Marshal(chat)
	if err != nil {
		return fmt.Errorf("failed to marshal chat history: %w", err)
	}
	query := `
		UPDATE case_reports
		SET doc = jsonb_set(doc, ARRAY['Historial del Chat de Deliberación'], $2::jsonb, true),
		    updated_at = $3
		WHERE case_id = $1
	`
	return r.patch(ctx, query, caseID, string(raw))
}

func (r *postgresRepo) patch(ctx context.Context, query, caseID string, value any) error {
	res, err := r.db.ExecContext(ctx, query, caseID, value, time.Now())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
