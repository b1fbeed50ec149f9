package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name  string
	Query string
}

// Migrations lists the schema steps in the order they run. Each one must be
// safe to repeat on every startup.
var Migrations = []Migration{
	{
		Name: "create_drafts",
		Query: `
			CREATE TABLE IF NOT EXISTS drafts (
				id         UUID PRIMARY KEY,
				user_id    UUID NOT NULL,
				document   JSONB NOT NULL,
				visibility JSONB NOT NULL DEFAULT '{}'::jsonb,
				profile    JSONB NOT NULL DEFAULT '{}'::jsonb,
				markup     JSONB,
				version    INTEGER NOT NULL DEFAULT 1,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
	},
	{
		Name:  "index_drafts_user",
		Query: `CREATE INDEX IF NOT EXISTS drafts_user_updated_idx ON drafts (user_id, updated_at DESC);`,
	},
	{
		Name: "create_export_jobs",
		Query: `
			CREATE TABLE IF NOT EXISTS export_jobs (
				id         UUID PRIMARY KEY,
				draft_id   UUID NOT NULL REFERENCES drafts(id) ON DELETE CASCADE,
				mode       TEXT NOT NULL,
				status     TEXT NOT NULL,
				error      TEXT NOT NULL DEFAULT '',
				file_path  TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			);`,
	},
}

// RunMigrations executes all migrations on startup.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logrus.Logger) error {
	log.Info("starting database migrations")
	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.Query); err != nil {
			log.WithError(err).WithField("name", m.Name).Error("migration failed")
			return err
		}
		log.WithField("name", m.Name).Debug("migration completed")
	}
	log.Info("all migrations completed")
	return nil
}
