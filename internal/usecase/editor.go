package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"
	"resume-editor/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DraftRepo persists drafts. Save must reject a draft whose version is not
// exactly one past the stored one with apperr.ErrStale.
type DraftRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Save(ctx context.Context, d *domain.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error)
}

var (
	errMissingDir   = errors.New("dir must be -1 or 1")
	errMissingField = errors.New("field is required")
)

// Editor owns draft state. Every change is a load, apply, save cycle run
// under the draft's lock, so commands on one draft never interleave.
type Editor struct {
	repo  DraftRepo
	log   *logrus.Logger
	locks *keyedMutex
	now   func() time.Time
}

func NewEditor(repo DraftRepo, log *logrus.Logger) *Editor {
	return &Editor{
		repo:  repo,
		log:   log,
		locks: newKeyedMutex(),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new draft holding the seed document.
func (e *Editor) Create(ctx context.Context, userID uuid.UUID) (*domain.Draft, error) {
	const op = "Editor.Create"
	d := domain.NewDraft(userID, e.now())
	d.Version = 1
	if err := e.repo.Save(ctx, d); err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "could not create draft", err)
	}
	e.log.WithFields(logrus.Fields{"draft_id": d.ID, "user_id": userID}).Info("draft created")
	return d, nil
}

func (e *Editor) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	d, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError("Editor.Get", err)
	}
	return d, nil
}

func (e *Editor) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := e.locks.lock(id)
	defer unlock()
	if err := e.repo.Delete(ctx, id); err != nil {
		return repoError("Editor.Delete", err)
	}
	e.log.WithField("draft_id", id).Info("draft deleted")
	return nil
}

func (e *Editor) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.DraftSummary, error) {
	out, err := e.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, repoError("Editor.ListByUser", err)
	}
	return out, nil
}

// Apply runs one command against the draft's current document. A command
// that changes nothing returns the stored draft untouched.
func (e *Editor) Apply(ctx context.Context, id uuid.UUID, cmd Command) (*domain.Draft, error) {
	const op = "Editor.Apply"
	if err := cmd.Validate(); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "invalid command: "+err.Error(), err)
	}
	return e.mutate(ctx, op, id, func(d *domain.Draft) bool {
		doc, vis := cmd.apply(d.Document, d.Visibility)
		if doc.Same(d.Document) {
			e.log.WithFields(logrus.Fields{"draft_id": id, "op": cmd.Op}).Debug("command changed nothing")
			return false
		}
		d.Document, d.Visibility = doc, vis
		return true
	})
}

// ProfilePatch carries the profile fields to change; nil fields are kept.
type ProfilePatch struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Location   *string `json:"location"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone"`
	ThemeName  *string `json:"themeName"`
	ThemeColor *string `json:"themeColor" validate:"omitempty,hexcolor"`
	Font       *string `json:"font" validate:"omitnil,font"`
	Size       *string `json:"size" validate:"omitempty,oneof=sm md lg"`
	Layout     *string `json:"layout" validate:"omitempty,oneof=split classic hybrid"`
}

func (p ProfilePatch) applyTo(prof model.Profile) model.Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&prof.Name, p.Name)
	set(&prof.Role, p.Role)
	set(&prof.Location, p.Location)
	set(&prof.Email, p.Email)
	set(&prof.Phone, p.Phone)
	set(&prof.Theme.Name, p.ThemeName)
	set(&prof.Theme.Color, p.ThemeColor)
	set(&prof.Font, p.Font)
	if p.Size != nil {
		prof.Size = model.Size(*p.Size)
	}
	if p.Layout != nil {
		prof.Layout = model.Layout(*p.Layout)
	}
	return prof
}

func (e *Editor) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*domain.Draft, error) {
	const op = "Editor.UpdateProfile"
	if err := validate.Struct(patch); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "invalid profile: "+err.Error(), err)
	}
	return e.mutate(ctx, op, id, func(d *domain.Draft) bool {
		next := patch.applyTo(d.Profile)
		if next == d.Profile {
			return false
		}
		d.Profile = next
		return true
	})
}

// SetVisibility shows or hides a section or personal detail by key.
func (e *Editor) SetVisibility(ctx context.Context, id uuid.UUID, key string, shown bool) (*domain.Draft, error) {
	const op = "Editor.SetVisibility"
	if key == "" {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "visibility key is required", nil)
	}
	return e.mutate(ctx, op, id, func(d *domain.Draft) bool {
		if cur, ok := d.Visibility[key]; ok && cur == shown {
			return false
		}
		d.Visibility = d.Visibility.Set(key, shown)
		return true
	})
}

// SaveMarkup stores the page builder's snapshot as given.
func (e *Editor) SaveMarkup(ctx context.Context, id uuid.UUID, m domain.Markup) (*domain.Draft, error) {
	return e.mutate(ctx, "Editor.SaveMarkup", id, func(d *domain.Draft) bool {
		m.SavedAt = e.now()
		d.Markup = &m
		return true
	})
}

func (e *Editor) LoadMarkup(ctx context.Context, id uuid.UUID) (*domain.Markup, error) {
	const op = "Editor.LoadMarkup"
	d, err := e.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Markup == nil {
		return nil, apperr.E(apperr.CodeNotFound, op, "no saved markup", nil)
	}
	return d.Markup, nil
}

func (e *Editor) ClearMarkup(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	return e.mutate(ctx, "Editor.ClearMarkup", id, func(d *domain.Draft) bool {
		if d.Markup == nil {
			return false
		}
		d.Markup = nil
		return true
	})
}

// mutate loads the draft under its lock, lets fn change it and saves the
// result with the next version. When fn reports no change nothing is saved.
func (e *Editor) mutate(ctx context.Context, op string, id uuid.UUID, fn func(d *domain.Draft) bool) (*domain.Draft, error) {
	unlock := e.locks.lock(id)
	defer unlock()

	d, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, repoError(op, err)
	}
	if !fn(d) {
		return d, nil
	}
	d.Version++
	d.UpdatedAt = e.now()
	if err := e.repo.Save(ctx, d); err != nil {
		return nil, repoError(op, err)
	}
	return d, nil
}

func repoError(op string, err error) error {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return apperr.E(apperr.CodeNotFound, op, "draft not found", err)
	case errors.Is(err, apperr.ErrStale):
		return apperr.E(apperr.CodeConflict, op, "draft was changed concurrently, reload and retry", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return apperr.E(apperr.CodeUnavailable, op, "request cancelled", err)
	}
	return apperr.E(apperr.CodeInternal, op, "storage error", err)
}

// keyedMutex hands out one mutex per draft id and forgets it once nobody
// holds or waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: map[uuid.UUID]*refMutex{}}
}

func (k *keyedMutex) lock(id uuid.UUID) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}
