package repository

import (
	"context"
	"sort"
	"sync"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"

	"github.com/google/uuid"
)

// MemoryDrafts keeps drafts in process memory. Records are stored in their
// serialized form so reads never share state with callers.
type MemoryDrafts struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*draftRecord
}

func NewMemoryDrafts() *MemoryDrafts {
	return &MemoryDrafts{drafts: map[uuid.UUID]*draftRecord{}}
}

func (m *MemoryDrafts) Get(_ context.Context, id uuid.UUID) (*domain.Draft, error) {
	m.mu.RLock()
	rec, ok := m.drafts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return rec.toDraft()
}

func (m *MemoryDrafts) Save(_ context.Context, d *domain.Draft) error {
	rec, err := toRecord(d)
	if err != nil {
		return err
	}
	if rec.Markup != nil {
		markup := *rec.Markup
		rec.Markup = &markup
	}
	rec.Visibility = cloneVisibility(rec.Visibility)

	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.drafts[d.ID]; ok && cur.Version != d.Version-1 {
		return apperr.ErrStale
	}
	m.drafts[d.ID] = rec
	return nil
}

func (m *MemoryDrafts) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(m.drafts, id)
	return nil
}

func (m *MemoryDrafts) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.DraftSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.DraftSummary{}
	for _, rec := range m.drafts {
		if rec.UserID != userID {
			continue
		}
		out = append(out, domain.DraftSummary{ID: rec.ID, Name: rec.Profile.Name, Version: rec.Version, UpdatedAt: rec.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func cloneVisibility(v map[string]bool) map[string]bool {
	out := make(map[string]bool, len(v))
	for k, b := range v {
		out[k] = b
	}
	return out
}

// MemoryJobs keeps export jobs in process memory.
type MemoryJobs struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]domain.ExportJob
}

func NewMemoryJobs() *MemoryJobs {
	return &MemoryJobs{jobs: map[uuid.UUID]domain.ExportJob{}}
}

func (m *MemoryJobs) Save(_ context.Context, j *domain.ExportJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = *j
	return nil
}

func (m *MemoryJobs) Get(_ context.Context, id uuid.UUID) (*domain.ExportJob, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	j, ok := m.jobs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &j, nil
}
