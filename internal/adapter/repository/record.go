package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"resume-editor/internal/domain"
	"resume-editor/internal/model"

	"github.com/google/uuid"
)

// draftRecord is the stored form of a draft. The document stays raw so it
// goes through schema validation on every read, whichever store it came
// from.
type draftRecord struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"user_id"`
	Document   json.RawMessage  `json:"document"`
	Visibility model.Visibility `json:"visibility"`
	Profile    model.Profile    `json:"profile"`
	Markup     *domain.Markup   `json:"markup,omitempty"`
	Version    int              `json:"version"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func toRecord(d *domain.Draft) (*draftRecord, error) {
	doc, err := json.Marshal(d.Document)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return &draftRecord{
		ID:         d.ID,
		UserID:     d.UserID,
		Document:   doc,
		Visibility: d.Visibility,
		Profile:    d.Profile,
		Markup:     d.Markup,
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

func (r *draftRecord) toDraft() (*domain.Draft, error) {
	doc, err := model.ParseDocument(r.Document)
	if err != nil {
		return nil, fmt.Errorf("draft %s: %w", r.ID, err)
	}
	vis := model.Visibility(cloneVisibility(r.Visibility))
	var markup *domain.Markup
	if r.Markup != nil {
		m := *r.Markup
		markup = &m
	}
	return &domain.Draft{
		ID:         r.ID,
		UserID:     r.UserID,
		Document:   doc,
		Visibility: vis,
		Profile:    r.Profile,
		Markup:     markup,
		Version:    r.Version,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}, nil
}
