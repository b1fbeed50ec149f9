package repository

import (
	"context"
	"errors"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// JobsRepo stores export jobs.
type JobsRepo struct {
	pool *pgxpool.Pool
}

func NewJobsRepo(pool *pgxpool.Pool) *JobsRepo {
	return &JobsRepo{pool: pool}
}

func (r *JobsRepo) Save(ctx context.Context, j *domain.ExportJob) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO export_jobs (id, draft_id, mode, status, error, file_path, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, error = EXCLUDED.error, file_path = EXCLUDED.file_path, updated_at = EXCLUDED.updated_at`,
		j.ID, j.DraftID, string(j.Mode), string(j.Status), j.Error, j.FilePath, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *JobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	var (
		j      domain.ExportJob
		mode   string
		status string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, draft_id, mode, status, error, file_path, created_at, updated_at
		FROM export_jobs WHERE id = $1`, id).
		Scan(&j.ID, &j.DraftID, &mode, &status, &j.Error, &j.FilePath, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	j.Mode = domain.ExportMode(mode)
	j.Status = domain.ExportStatus(status)
	return &j, nil
}
