package domain

import (
	"time"

	"resume-editor/internal/model"

	"github.com/google/uuid"
)

// Draft is one user's editor state: the document, what is shown, the
// profile fields and the page builder's saved markup.
type Draft struct {
	ID         uuid.UUID        `json:"id"`
	UserID     uuid.UUID        `json:"user_id"`
	Document   model.Document   `json:"document"`
	Visibility model.Visibility `json:"visibility"`
	Profile    model.Profile    `json:"profile"`
	Markup     *Markup          `json:"markup,omitempty"`
	Version    int              `json:"version"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewDraft returns a draft holding the seed document.
func NewDraft(userID uuid.UUID, now time.Time) *Draft {
	return &Draft{
		ID:         uuid.New(),
		UserID:     userID,
		Document:   model.Seed(),
		Visibility: model.SeedVisibility(),
		Profile:    model.DefaultProfile(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Markup is the page builder's saved HTML/CSS. It is stored as given and
// never parsed.
type Markup struct {
	HTML         string    `json:"html"`
	CSS          string    `json:"css"`
	ProfileImage string    `json:"profile_image,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// DraftSummary is the listing view of a draft.
type DraftSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
