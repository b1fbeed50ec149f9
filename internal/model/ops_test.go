package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDoc(content string) Document {
	return Seed().AddSection(KindList, PlacementLeft).withContent(content)
}

// withContent sets the content of the last section; test helper only.
func (d Document) withContent(content string) Document {
	return d.UpdateContent(d.Sections[len(d.Sections)-1].ID, content)
}

func lastID(d Document) string { return d.Sections[len(d.Sections)-1].ID }

func lines(t *testing.T, d Document, id string) []string {
	t.Helper()
	s, ok := d.Section(id)
	require.True(t, ok)
	b, ok := s.Body.(ListBody)
	require.True(t, ok)
	return b.Lines
}

func experiences(t *testing.T, d Document) []Experience {
	t.Helper()
	s, ok := d.Section("work")
	require.True(t, ok)
	return s.Body.(ExperienceBody).Items
}

func educations(t *testing.T, d Document) []Education {
	t.Helper()
	s, ok := d.Section("education")
	require.True(t, ok)
	return s.Body.(EducationBody).Items
}

func companies(items []Experience) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.Company
	}
	return out
}

func schools(items []Education) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.School
	}
	return out
}

func TestSeed(t *testing.T) {
	d := Seed()
	assert.Equal(t, []string{"about", "work", "education", "skills"}, d.IDs())

	kinds := make([]Kind, 0, d.Len())
	for _, s := range d.Sections {
		kinds = append(kinds, s.Kind())
	}
	assert.Equal(t, []Kind{KindText, KindExperience, KindEducation, KindSkills}, kinds)

	for _, id := range []string{"work", "education", "skills"} {
		s, _ := d.Section(id)
		assert.Equal(t, 1, s.Len(), id)
	}
	skills, _ := d.Section("skills")
	assert.Equal(t, PlacementLeft, skills.Placement)
}

func TestRemoveLastItemIsRefused(t *testing.T) {
	d := Seed()

	assert.Equal(t, d, d.RemoveExperience("work", 0))
	assert.Len(t, experiences(t, d.RemoveExperience("work", 0)), 1)
	assert.Equal(t, d, d.RemoveEducation("education", 0))
	assert.Equal(t, d, d.RemoveSkill("skills", 0))
}

func TestItemCountFloorAfterRemovals(t *testing.T) {
	d := Seed().
		AppendExperience("work").
		AppendExperience("work").
		AppendEducation("education").
		AppendSkill("skills", "Go")

	for i := 0; i < 5; i++ {
		d = d.RemoveExperience("work", 0).RemoveEducation("education", 0).RemoveSkill("skills", 0)
	}
	for _, id := range []string{"work", "education", "skills"} {
		s, _ := d.Section(id)
		assert.Equal(t, 1, s.Len(), id)
	}
}

func TestRemoveItemOutOfRange(t *testing.T) {
	d := Seed().AppendExperience("work")
	assert.Equal(t, d, d.RemoveExperience("work", 5))
	assert.Equal(t, d, d.RemoveExperience("work", -1))
}

func TestMoveListLine(t *testing.T) {
	d := listDoc("a\nb\nc")
	id := lastID(d)

	got := d.MoveListLine(id, 1, -1)
	s, _ := got.Section(id)
	assert.Equal(t, []string{"b", "a", "c"}, lines(t, got, id))

	raw, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"content":"b\na\nc"`)
}

func TestMoveAtBoundaryIsNoop(t *testing.T) {
	d := listDoc("a\nb\nc")
	id := lastID(d)

	assert.Equal(t, d, d.MoveListLine(id, 0, -1))
	assert.Equal(t, d, d.MoveListLine(id, 2, 1))
	assert.Equal(t, d, d.MoveListLine(id, 1, 2), "only single steps are allowed")

	two := Seed().AppendExperience("work")
	assert.Equal(t, two, two.MoveExperience("work", 0, -1))
	assert.Equal(t, two, two.MoveExperience("work", 1, 1))

	assert.Equal(t, Seed(), Seed().MoveSection(0, -1))
	assert.Equal(t, Seed(), Seed().MoveSection(3, 1))
}

func TestMoveSection(t *testing.T) {
	d := Seed().MoveSection(3, -1)
	assert.Equal(t, []string{"about", "work", "skills", "education"}, d.IDs())
}

func TestRemoveListLineCollapse(t *testing.T) {
	d := listDoc("only")
	id := lastID(d)
	assert.Equal(t, []string{"only"}, lines(t, d.RemoveListLine(id, 0), id))

	empty := listDoc("")
	id = lastID(empty)
	assert.Equal(t, []string{PlaceholderCollapsed}, lines(t, empty.RemoveListLine(id, 0), id))

	many := listDoc("a\nb")
	assert.Equal(t, []string{"b"}, lines(t, many.RemoveListLine(lastID(many), 0), lastID(many)))
}

func TestInsertAfter(t *testing.T) {
	d := Seed().UpdateExperience("work", 0, FieldCompany, "Acme").AppendExperience("work")
	d = d.UpdateExperience("work", 1, FieldCompany, "Globex")

	got := experiences(t, d.InsertExperienceAfter("work", -1))
	require.Len(t, got, 3)
	assert.Equal(t, NewExperience(), got[0])
	assert.Equal(t, "Acme", got[1].Company)
	assert.Equal(t, "Globex", got[2].Company)

	mid := experiences(t, d.InsertExperienceAfter("work", 0))
	assert.Equal(t, []string{"Acme", PlaceholderCompany, "Globex"}, []string{mid[0].Company, mid[1].Company, mid[2].Company})

	assert.Equal(t, d, d.InsertExperienceAfter("work", 2))
	assert.Equal(t, d, d.InsertExperienceAfter("work", -2))
}

func TestInsertListLineIntoEmptyList(t *testing.T) {
	d := listDoc("")
	id := lastID(d)
	assert.Equal(t, []string{PlaceholderListLine}, lines(t, d.InsertListLineAfter(id, -1), id))
}

func TestReorder(t *testing.T) {
	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"b", "c", "a", "d"}},
		{3, 0, []string{"d", "a", "b", "c"}},
		{1, 2, []string{"a", "c", "b", "d"}},
		{2, 2, []string{"a", "b", "c", "d"}},
		{4, 0, []string{"a", "b", "c", "d"}},
		{0, 4, []string{"a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d->%d", tt.from, tt.to), func(t *testing.T) {
			d := listDoc("a\nb\nc\nd")
			id := lastID(d)
			assert.Equal(t, tt.want, lines(t, d.ReorderListLine(id, tt.from, tt.to), id))
		})
	}
}

func TestReorderSameIndexIsIdentity(t *testing.T) {
	d := Seed().AppendSkill("skills", "Go").AppendSkill("skills", "SQL")
	assert.Equal(t, d, d.ReorderSkill("skills", 1, 1))
	assert.Equal(t, d, d.ReorderExperience("work", 0, 0))
	assert.Equal(t, d, d.ReorderEducation("education", 0, 0))
}

func TestReorderSkills(t *testing.T) {
	d := Seed().AppendSkill("skills", "Go").AppendSkill("skills", "SQL")
	got := d.ReorderSkill("skills", 0, 2)
	s, _ := got.Section("skills")
	assert.Equal(t, []string{"Go", "SQL", PlaceholderSkill}, s.Body.(SkillsBody).Skills)
}

func TestUpdateWrongKindOrMissingID(t *testing.T) {
	d := Seed()
	assert.Equal(t, d, d.UpdateContent("work", "text"))
	assert.Equal(t, d, d.UpdateContent("missing", "text"))
	assert.Equal(t, d, d.UpdateExperience("about", 0, FieldCompany, "x"))
	assert.Equal(t, d, d.UpdateExperience("work", 1, FieldCompany, "x"))
	assert.Equal(t, d, d.UpdateExperience("work", 0, "salary", "x"))
	assert.Equal(t, d, d.UpdateEducation("education", 0, FieldBullets, "x"))
	assert.Equal(t, d, d.UpdateSkill("skills", 3, "x"))
	assert.Equal(t, d, d.AppendExperience("education"))
	assert.Equal(t, d, d.AppendListLine("about", "x"))
}

func TestUpdateDoesNotAliasInput(t *testing.T) {
	d := Seed()
	next := d.UpdateExperience("work", 0, FieldRole, "Engineer")

	assert.Equal(t, PlaceholderRole, experiences(t, d)[0].Role)
	assert.Equal(t, "Engineer", experiences(t, next)[0].Role)
}

func TestUpdateListLineNormalizes(t *testing.T) {
	d := listDoc("a\nb\nc")
	id := lastID(d)

	assert.Equal(t, []string{"a", "c"}, lines(t, d.UpdateListLine(id, 1, ""), id))
	assert.Equal(t, []string{"a", "x", "y", "c"}, lines(t, d.UpdateListLine(id, 1, "x\n\ny"), id))
	assert.Equal(t, d, d.UpdateListLine(id, 3, "z"))
}

func TestListContentRoundTrip(t *testing.T) {
	d := listDoc("\n\na\n\n\nb\n")
	id := lastID(d)
	assert.Equal(t, []string{"a", "b"}, lines(t, d, id))

	d = d.InsertListLineAfter(id, 0).MoveListLine(id, 2, -1).RemoveListLine(id, 0)
	s, _ := d.Section(id)
	content := JoinLines(s.Body.(ListBody).Lines)
	assert.Equal(t, SplitLines(content), lines(t, d, id))
	assert.Equal(t, "b\nNew item", content)
}

func TestAppendSkillTrims(t *testing.T) {
	d := Seed().AppendSkill("skills", "  Go  ")
	s, _ := d.Section("skills")
	assert.Equal(t, []string{PlaceholderSkill, "Go"}, s.Body.(SkillsBody).Skills)

	for _, blank := range []string{"", "   ", "\t\n"} {
		got := d.AppendSkill("skills", blank)
		assert.True(t, d.Same(got), "%q", blank)
		assert.Equal(t, d, got)
	}
}

func TestAppendListLine(t *testing.T) {
	d := listDoc("a")
	id := lastID(d)

	assert.Equal(t, []string{"a", "b"}, lines(t, d.AppendListLine(id, "b"), id))
	assert.Equal(t, []string{"a", PlaceholderListLine}, lines(t, d.AppendListLine(id, "  "), id))
	assert.Equal(t, []string{"a", "x", "y"}, lines(t, d.AppendListLine(id, "x\n\ny"), id))
	assert.Equal(t, []string{"a"}, lines(t, d, id), "input snapshot must not change")
}

func TestEducationInsertAndMove(t *testing.T) {
	d := Seed().
		UpdateEducation("education", 0, FieldSchool, "MIT").
		AppendEducation("education").
		UpdateEducation("education", 1, FieldSchool, "ETH")

	got := educations(t, d.InsertEducationAfter("education", -1))
	require.Len(t, got, 3)
	assert.Equal(t, NewEducation(), got[0])
	assert.Equal(t, []string{PlaceholderSchool, "MIT", "ETH"}, schools(got))

	assert.Equal(t, []string{"MIT", PlaceholderSchool, "ETH"}, schools(educations(t, d.InsertEducationAfter("education", 0))))
	assert.Equal(t, []string{"MIT", "ETH", PlaceholderSchool}, schools(educations(t, d.InsertEducationAfter("education", 1))))
	assert.Equal(t, d, d.InsertEducationAfter("education", 2))
	assert.Equal(t, d, d.InsertEducationAfter("education", -2))
	assert.Equal(t, d, d.InsertEducationAfter("work", 0), "wrong kind")

	assert.Equal(t, []string{"ETH", "MIT"}, schools(educations(t, d.MoveEducation("education", 0, 1))))
	assert.Equal(t, []string{"ETH", "MIT"}, schools(educations(t, d.MoveEducation("education", 1, -1))))
	assert.Equal(t, d, d.MoveEducation("education", 0, -1))
	assert.Equal(t, d, d.MoveEducation("education", 1, 1))
	assert.Equal(t, d, d.MoveEducation("education", 0, 2))
	assert.Equal(t, d, d.MoveEducation("work", 0, 1), "wrong kind")
}

func TestReorderItems(t *testing.T) {
	d := Seed()
	for _, c := range []string{"A", "B", "C"} {
		d = d.AppendExperience("work").AppendEducation("education")
		n := len(experiences(t, d)) - 1
		d = d.UpdateExperience("work", n, FieldCompany, c).UpdateEducation("education", n, FieldSchool, c)
	}
	d = d.RemoveExperience("work", 0).RemoveEducation("education", 0)
	require.Equal(t, []string{"A", "B", "C"}, companies(experiences(t, d)))
	require.Equal(t, []string{"A", "B", "C"}, schools(educations(t, d)))

	assert.Equal(t, []string{"B", "C", "A"}, companies(experiences(t, d.ReorderExperience("work", 0, 2))))
	assert.Equal(t, []string{"C", "A", "B"}, companies(experiences(t, d.ReorderExperience("work", 2, 0))))
	assert.Equal(t, d, d.ReorderExperience("work", 0, 3))
	assert.Equal(t, d, d.ReorderExperience("work", -1, 0))

	assert.Equal(t, []string{"B", "C", "A"}, schools(educations(t, d.ReorderEducation("education", 0, 2))))
	assert.Equal(t, []string{"A", "C", "B"}, schools(educations(t, d.ReorderEducation("education", 2, 1))))
	assert.Equal(t, d, d.ReorderEducation("education", 3, 0))
	assert.Equal(t, d, d.ReorderEducation("work", 0, 1), "wrong kind")
}

func TestAddSection(t *testing.T) {
	d := Seed()
	got := d.AddSection(KindList, PlacementLeft)

	require.Equal(t, 5, got.Len())
	added := got.Sections[4]
	assert.Equal(t, KindList, added.Kind())
	assert.Equal(t, PlacementLeft, added.Placement)
	assert.Equal(t, "List", added.Title)
	assert.NotContains(t, d.IDs(), added.ID)
	assert.Equal(t, 4, d.Len(), "input snapshot must not change")

	assert.Equal(t, d, d.AddSection(KindExperience, PlacementLeft))
	assert.Equal(t, d, d.AddSection(KindText, Placement("middle")))
}

func TestAddSectionRegeneratesCollidingID(t *testing.T) {
	orig := newSectionID
	t.Cleanup(func() { newSectionID = orig })

	ids := []string{"work", "about", "custom-1"}
	newSectionID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	got := Seed().AddSection(KindText, PlacementRight)
	assert.Equal(t, "custom-1", got.Sections[4].ID)
	assert.Equal(t, "Text", got.Sections[4].Title)
}

func TestRemoveSection(t *testing.T) {
	d, v := Seed(), SeedVisibility()

	d2, v2 := RemoveSection(d, v, "education")
	assert.Equal(t, []string{"about", "work", "skills"}, d2.IDs())
	assert.False(t, v2.Visible("education"))
	assert.True(t, v.Visible("education"), "input visibility must not change")

	d3, v3 := RemoveSection(d2, v2, "education")
	assert.Equal(t, d2, d3)
	assert.Equal(t, v2, v3)
}

func TestVisibilityDefaultsToVisible(t *testing.T) {
	v := Visibility{}
	assert.True(t, v.Visible("anything"))

	hidden := v.Set(KeyPhone, false)
	assert.False(t, hidden.Visible(KeyPhone))
	assert.Empty(t, v)
}

func TestRenameSection(t *testing.T) {
	d := Seed().RenameSection("about", "Profile")
	s, _ := d.Section("about")
	assert.Equal(t, "Profile", s.Title)
	assert.Equal(t, Seed(), Seed().RenameSection("nope", "x"))
}

func TestSame(t *testing.T) {
	d := Seed()
	assert.True(t, d.Same(d))
	assert.True(t, d.Same(d.RemoveSkill("skills", 0)), "refused removal returns the receiver")
	assert.False(t, d.Same(d.RenameSection("about", "Bio")))
	assert.False(t, d.Same(d.Clone()))
	assert.True(t, Document{}.Same(Document{}))
}
