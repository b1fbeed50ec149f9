package repository

import (
	"context"
	"time"

	"resume-editor/internal/cache"
	"resume-editor/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DraftStore is what the cache decorator wraps.
type DraftStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Save(ctx context.Context, d *domain.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error)
}

// CachedDrafts serves draft reads from a cache in front of another store.
// Writes go to the store first; the cache entry is refreshed afterwards and
// cache failures are only logged.
type CachedDrafts struct {
	next  DraftStore
	cache cache.Cache
	ttl   time.Duration
	log   *logrus.Logger
}

func NewCachedDrafts(next DraftStore, c cache.Cache, ttl time.Duration, log *logrus.Logger) *CachedDrafts {
	return &CachedDrafts{next: next, cache: c, ttl: ttl, log: log}
}

func draftKey(id uuid.UUID) string { return "draft:" + id.String() }

func (c *CachedDrafts) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	var rec draftRecord
	hit, err := c.cache.GetJSON(ctx, draftKey(id), &rec)
	if err != nil {
		c.log.WithError(err).WithField("draft_id", id).Warn("draft cache read failed")
	}
	if hit {
		if d, err := rec.toDraft(); err == nil {
			return d, nil
		}
		_ = c.cache.Del(ctx, draftKey(id))
	}

	d, err := c.next.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(ctx, d)
	return d, nil
}

func (c *CachedDrafts) Save(ctx context.Context, d *domain.Draft) error {
	if err := c.next.Save(ctx, d); err != nil {
		// the cached copy may be the stale one
		_ = c.cache.Del(ctx, draftKey(d.ID))
		return err
	}
	c.put(ctx, d)
	return nil
}

func (c *CachedDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.cache.Del(ctx, draftKey(id)); err != nil {
		c.log.WithError(err).WithField("draft_id", id).Warn("draft cache delete failed")
	}
	return c.next.Delete(ctx, id)
}

func (c *CachedDrafts) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error) {
	return c.next.ListByUser(ctx, userID)
}

func (c *CachedDrafts) put(ctx context.Context, d *domain.Draft) {
	rec, err := toRecord(d)
	if err != nil {
		return
	}
	if err := c.cache.SetJSON(ctx, draftKey(d.ID), rec, c.ttl); err != nil {
		c.log.WithError(err).WithField("draft_id", d.ID).Warn("draft cache write failed")
	}
}
