package repository

import (
	"context"
	"encoding/json"
	"errors"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type DraftsRepo struct {
	pool *pgxpool.Pool
}

func NewDraftsRepo(pool *pgxpool.Pool) *DraftsRepo {
	return &DraftsRepo{pool: pool}
}

func (r *DraftsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	var (
		rec        draftRecord
		visibility []byte
		profile    []byte
		markup     []byte
	)
	err := r.pool.QueryRow(ctx, `SELECT id, user_id, document, visibility, profile, markup, version, created_at, updated_at
		FROM drafts WHERE id = $1`, id).
		Scan(&rec.ID, &rec.UserID, &rec.Document, &visibility, &profile, &markup, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(visibility, &rec.Visibility); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(profile, &rec.Profile); err != nil {
		return nil, err
	}
	if len(markup) > 0 && string(markup) != "null" {
		rec.Markup = &domain.Markup{}
		if err := json.Unmarshal(markup, rec.Markup); err != nil {
			return nil, err
		}
	}
	return rec.toDraft()
}

// Save upserts the draft. d.Version must be one more than the stored
// version (or 1 for a new draft); otherwise ErrStale is returned and nothing
// is written.
func (r *DraftsRepo) Save(ctx context.Context, d *domain.Draft) error {
	rec, err := toRecord(d)
	if err != nil {
		return err
	}
	visB, _ := json.Marshal(rec.Visibility)
	profB, _ := json.Marshal(rec.Profile)
	var markupB []byte
	if rec.Markup != nil {
		markupB, _ = json.Marshal(rec.Markup)
	}

	tag, err := r.pool.Exec(ctx, `INSERT INTO drafts (id, user_id, document, visibility, profile, markup, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, visibility = EXCLUDED.visibility, profile = EXCLUDED.profile,
			markup = EXCLUDED.markup, version = EXCLUDED.version, updated_at = EXCLUDED.updated_at
		WHERE drafts.version = EXCLUDED.version - 1`,
		rec.ID, rec.UserID, []byte(rec.Document), visB, profB, markupB, rec.Version, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrStale
	}
	return nil
}

func (r *DraftsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's drafts, most recently edited first.
func (r *DraftsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT coalesce(json_agg(json_build_object(
			'id', d.id, 'name', d.profile->>'name', 'version', d.version, 'updated_at', d.updated_at
		) ORDER BY d.updated_at DESC), '[]')
		FROM drafts d WHERE d.user_id = $1`, userID).Scan(&raw)
	if err != nil {
		return nil, err
	}
	var out []domain.DraftSummary
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
