package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"resume-editor/internal/adapter/repository"
	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"
	"resume-editor/internal/logger"
	"resume-editor/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) (*Editor, *domain.Draft) {
	t.Helper()
	e := NewEditor(repository.NewMemoryDrafts(), logger.Discard())
	d, err := e.Create(context.Background(), uuid.New())
	require.NoError(t, err)
	return e, d
}

func skillsOf(t *testing.T, d *domain.Draft) []string {
	t.Helper()
	s, ok := d.Document.Section("skills")
	require.True(t, ok)
	return s.Body.(model.SkillsBody).Skills
}

func TestEditorCreateAndGet(t *testing.T) {
	e, d := newEditor(t)
	assert.Equal(t, 1, d.Version)
	assert.Equal(t, []string{"about", "work", "education", "skills"}, d.Document.IDs())

	got, err := e.Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	_, err = e.Get(context.Background(), uuid.New())
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestEditorApply(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	out, err := e.Apply(ctx, d.ID, Command{Op: OpUpdateContent, SectionID: "about", Value: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Version)
	s, _ := out.Document.Section("about")
	assert.Equal(t, model.TextBody{Content: "Hello"}, s.Body)

	out, err = e.Apply(ctx, d.ID, Command{Op: OpAppendSkill, SectionID: "skills", Value: "  Go "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Skill", "Go"}, skillsOf(t, out))

	out, err = e.Apply(ctx, d.ID, Command{Op: OpReorderSkill, SectionID: "skills", From: 1, To: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Skill"}, skillsOf(t, out))
	assert.Equal(t, 4, out.Version)
}

func TestEditorApplyNoOpKeepsVersion(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	out, err := e.Apply(ctx, d.ID, Command{Op: OpRemoveSkill, SectionID: "skills", Index: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Version)
	assert.Equal(t, []string{"Skill"}, skillsOf(t, out))

	out, err = e.Apply(ctx, d.ID, Command{Op: OpUpdateContent, SectionID: "missing", Value: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Version)
}

func TestEditorApplyRejectsMalformedCommands(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	tests := []struct {
		name string
		cmd  Command
	}{
		{"unknown op", Command{Op: "explode", SectionID: "about"}},
		{"missing op", Command{SectionID: "about"}},
		{"missing section", Command{Op: OpUpdateContent, Value: "x"}},
		{"bad dir", Command{Op: OpMoveSection, Index: 0, Dir: 2}},
		{"zero dir", Command{Op: OpMoveExperience, SectionID: "work"}},
		{"bad field", Command{Op: OpUpdateExperience, SectionID: "work", Field: "salary"}},
		{"missing field", Command{Op: OpUpdateEducation, SectionID: "education"}},
		{"add without kind", Command{Op: OpAddSection, Placement: model.PlacementLeft}},
		{"add skills kind", Command{Op: OpAddSection, Kind: model.KindSkills, Placement: model.PlacementLeft}},
		{"bad placement", Command{Op: OpAddSection, Kind: model.KindText, Placement: "middle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Apply(ctx, d.ID, tt.cmd)
			assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument), "got %v", err)
		})
	}
}

func TestEditorAddAndRemoveSection(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	out, err := e.Apply(ctx, d.ID, Command{Op: OpAddSection, Kind: model.KindList, Placement: model.PlacementLeft})
	require.NoError(t, err)
	require.Equal(t, 5, out.Document.Len())
	id := out.Document.IDs()[4]
	assert.Contains(t, id, "custom-")

	out, err = e.Apply(ctx, d.ID, Command{Op: OpRemoveSection, SectionID: id})
	require.NoError(t, err)
	assert.Equal(t, 4, out.Document.Len())
	assert.False(t, out.Visibility.Visible(id))

	out, err = e.Apply(ctx, d.ID, Command{Op: OpMoveSection, Index: 3, Dir: -1})
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "work", "skills", "education"}, out.Document.IDs())
}

func TestEditorSerializesCommands(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Apply(ctx, d.ID, Command{Op: OpAppendSkill, SectionID: "skills", Value: "Go"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	out, err := e.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, skillsOf(t, out), n+1)
	assert.Equal(t, n+1, out.Version)
	assert.Empty(t, e.locks.locks)
}

func TestEditorUpdateProfile(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	name, size := "Ada", "lg"
	out, err := e.UpdateProfile(ctx, d.ID, ProfilePatch{Name: &name, Size: &size})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Profile.Name)
	assert.Equal(t, model.SizeLarge, out.Profile.Size)
	assert.Equal(t, "Your Role", out.Profile.Role)

	bad := "huge"
	_, err = e.UpdateProfile(ctx, d.ID, ProfilePatch{Size: &bad})
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))

	color := "not-a-color"
	_, err = e.UpdateProfile(ctx, d.ID, ProfilePatch{ThemeColor: &color})
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestEditorUpdateProfileFont(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	font := "Fira Sans"
	out, err := e.UpdateProfile(ctx, d.ID, ProfilePatch{Font: &font})
	require.NoError(t, err)
	assert.Equal(t, "Fira Sans", out.Profile.Font)

	html, err := RenderDraft(out)
	require.NoError(t, err)
	assert.Contains(t, html, "font-family: Fira Sans, sans-serif")

	for _, bad := range []string{"Comic Sans", "x;} body{display:none", ""} {
		_, err = e.UpdateProfile(ctx, d.ID, ProfilePatch{Font: &bad})
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument), "%q", bad)
	}
	got, err := e.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fira Sans", got.Profile.Font)
}

func TestEditorVisibility(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	out, err := e.SetVisibility(ctx, d.ID, model.KeyEmail, false)
	require.NoError(t, err)
	assert.False(t, out.Visibility.Visible(model.KeyEmail))
	assert.Equal(t, 2, out.Version)

	out, err = e.SetVisibility(ctx, d.ID, model.KeyEmail, false)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Version)

	_, err = e.SetVisibility(ctx, d.ID, "", true)
	assert.True(t, apperr.IsCode(err, apperr.CodeInvalidArgument))
}

func TestEditorMarkup(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	_, err := e.LoadMarkup(ctx, d.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))

	_, err = e.SaveMarkup(ctx, d.ID, domain.Markup{HTML: "<div>x</div>", CSS: "div{}"})
	require.NoError(t, err)
	m, err := e.LoadMarkup(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "<div>x</div>", m.HTML)
	assert.False(t, m.SavedAt.IsZero())

	out, err := e.ClearMarkup(ctx, d.ID)
	require.NoError(t, err)
	assert.Nil(t, out.Markup)
}

func TestEditorDeleteAndList(t *testing.T) {
	ctx := context.Background()
	e, d := newEditor(t)

	list, err := e.ListByUser(ctx, d.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, d.ID, list[0].ID)

	require.NoError(t, e.Delete(ctx, d.ID))
	err = e.Delete(ctx, d.ID)
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

// staleRepo fails every save as if another writer got there first.
type staleRepo struct{ *repository.MemoryDrafts }

func (staleRepo) Save(context.Context, *domain.Draft) error { return apperr.ErrStale }

func TestEditorStaleSaveIsConflict(t *testing.T) {
	ctx := context.Background()
	mem := repository.NewMemoryDrafts()
	d := domain.NewDraft(uuid.New(), time.Now())
	d.Version = 1
	require.NoError(t, mem.Save(ctx, d))

	e := NewEditor(staleRepo{mem}, logger.Discard())
	_, err := e.Apply(ctx, d.ID, Command{Op: OpRenameSection, SectionID: "about", Value: "Bio"})
	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
}
