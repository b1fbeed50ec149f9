package model

import (
	"strings"

	"github.com/google/uuid"
)

// newSectionID generates candidate ids for sections created by AddSection.
var newSectionID = func() string {
	return "custom-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// AddSection appends an empty text or list section. Other kinds, or an
// unknown placement, leave the document unchanged.
func (d Document) AddSection(kind Kind, placement Placement) Document {
	if !placement.Valid() {
		return d
	}
	var body Payload
	switch kind {
	case KindText:
		body = TextBody{}
	case KindList:
		body = ListBody{Lines: []string{}}
	default:
		return d
	}
	id := newSectionID()
	for d.hasID(id) {
		id = newSectionID()
	}
	return Document{Sections: appendItem(d.Sections, Section{
		ID:        id,
		Title:     defaultTitle(kind),
		Placement: placement,
		Body:      body,
	})}
}

// RemoveSection deletes the section and hides it. An unknown id leaves both
// values untouched.
func RemoveSection(d Document, v Visibility, id string) (Document, Visibility) {
	i := d.indexOf(id)
	if i < 0 {
		return d, v
	}
	sections, _ := removeAt(d.Sections, i)
	return Document{Sections: sections}, v.Set(id, false)
}

// MoveSection shifts the section at index one step in direction dir.
func (d Document) MoveSection(index, dir int) Document {
	sections, ok := moveStep(d.Sections, index, dir)
	if !ok {
		return d
	}
	return Document{Sections: sections}
}

func (d Document) RenameSection(id, title string) Document {
	return d.edit(id, func(s Section) (Section, bool) {
		s.Title = title
		return s, true
	})
}

// UpdateContent replaces the content of a text or list section. For a list
// the content is newline-joined text.
func (d Document) UpdateContent(id, content string) Document {
	return d.edit(id, func(s Section) (Section, bool) {
		switch s.Body.(type) {
		case TextBody:
			s.Body = TextBody{Content: content}
		case ListBody:
			s.Body = ListBody{Lines: SplitLines(content)}
		default:
			return s, false
		}
		return s, true
	})
}

func (d Document) editExperience(id string, fn func([]Experience) ([]Experience, bool)) Document {
	return d.edit(id, func(s Section) (Section, bool) {
		b, ok := s.Body.(ExperienceBody)
		if !ok {
			return s, false
		}
		items, changed := fn(b.Items)
		if !changed {
			return s, false
		}
		s.Body = ExperienceBody{Items: items}
		return s, true
	})
}

func (d Document) UpdateExperience(id string, index int, field, value string) Document {
	return d.editExperience(id, func(items []Experience) ([]Experience, bool) {
		if index < 0 || index >= len(items) {
			return items, false
		}
		next, ok := items[index].With(field, value)
		if !ok {
			return items, false
		}
		return replaceAt(items, index, next)
	})
}

func (d Document) AppendExperience(id string) Document {
	return d.editExperience(id, func(items []Experience) ([]Experience, bool) {
		return appendItem(items, NewExperience()), true
	})
}

func (d Document) InsertExperienceAfter(id string, index int) Document {
	return d.editExperience(id, func(items []Experience) ([]Experience, bool) {
		return insertAfter(items, index, NewExperience())
	})
}

func (d Document) MoveExperience(id string, index, dir int) Document {
	return d.editExperience(id, func(items []Experience) ([]Experience, bool) {
		return moveStep(items, index, dir)
	})
}

func (d Document) ReorderExperience(id string, from, to int) Document {
	return d.editExperience(id, func(items []Experience) ([]Experience, bool) {
		return reorder(items, from, to)
	})
}

// RemoveExperience refuses to remove the last remaining entry.
func (d Document) RemoveExperience(id string, index int) Document {
	return d.editExperience(id, func(items []Experience) ([]Experience, bool) {
		if len(items) <= 1 {
			return items, false
		}
		return removeAt(items, index)
	})
}

func (d Document) editEducation(id string, fn func([]Education) ([]Education, bool)) Document {
	return d.edit(id, func(s Section) (Section, bool) {
		b, ok := s.Body.(EducationBody)
		if !ok {
			return s, false
		}
		items, changed := fn(b.Items)
		if !changed {
			return s, false
		}
		s.Body = EducationBody{Items: items}
		return s, true
	})
}

func (d Document) UpdateEducation(id string, index int, field, value string) Document {
	return d.editEducation(id, func(items []Education) ([]Education, bool) {
		if index < 0 || index >= len(items) {
			return items, false
		}
		next, ok := items[index].With(field, value)
		if !ok {
			return items, false
		}
		return replaceAt(items, index, next)
	})
}

func (d Document) AppendEducation(id string) Document {
	return d.editEducation(id, func(items []Education) ([]Education, bool) {
		return appendItem(items, NewEducation()), true
	})
}

func (d Document) InsertEducationAfter(id string, index int) Document {
	return d.editEducation(id, func(items []Education) ([]Education, bool) {
		return insertAfter(items, index, NewEducation())
	})
}

func (d Document) MoveEducation(id string, index, dir int) Document {
	return d.editEducation(id, func(items []Education) ([]Education, bool) {
		return moveStep(items, index, dir)
	})
}

func (d Document) ReorderEducation(id string, from, to int) Document {
	return d.editEducation(id, func(items []Education) ([]Education, bool) {
		return reorder(items, from, to)
	})
}

func (d Document) RemoveEducation(id string, index int) Document {
	return d.editEducation(id, func(items []Education) ([]Education, bool) {
		if len(items) <= 1 {
			return items, false
		}
		return removeAt(items, index)
	})
}

func (d Document) editSkills(id string, fn func([]string) ([]string, bool)) Document {
	return d.edit(id, func(s Section) (Section, bool) {
		b, ok := s.Body.(SkillsBody)
		if !ok {
			return s, false
		}
		skills, changed := fn(b.Skills)
		if !changed {
			return s, false
		}
		s.Body = SkillsBody{Skills: skills}
		return s, true
	})
}

func (d Document) UpdateSkill(id string, index int, value string) Document {
	return d.editSkills(id, func(skills []string) ([]string, bool) {
		return replaceAt(skills, index, value)
	})
}

// AppendSkill adds a trimmed chip. A blank value changes nothing.
func (d Document) AppendSkill(id, value string) Document {
	value = strings.TrimSpace(value)
	if value == "" {
		return d
	}
	return d.editSkills(id, func(skills []string) ([]string, bool) {
		return appendItem(skills, value), true
	})
}

func (d Document) ReorderSkill(id string, from, to int) Document {
	return d.editSkills(id, func(skills []string) ([]string, bool) {
		return reorder(skills, from, to)
	})
}

func (d Document) RemoveSkill(id string, index int) Document {
	return d.editSkills(id, func(skills []string) ([]string, bool) {
		if len(skills) <= 1 {
			return skills, false
		}
		return removeAt(skills, index)
	})
}

// editList runs fn over a list section's lines and normalizes the result,
// so an edit that blanks a line or embeds a newline reads back the same way
// the newline-joined content would.
func (d Document) editList(id string, fn func([]string) ([]string, bool)) Document {
	return d.edit(id, func(s Section) (Section, bool) {
		b, ok := s.Body.(ListBody)
		if !ok {
			return s, false
		}
		lines, changed := fn(b.Lines)
		if !changed {
			return s, false
		}
		s.Body = ListBody{Lines: normalizeLines(lines)}
		return s, true
	})
}

func (d Document) UpdateListLine(id string, index int, value string) Document {
	return d.editList(id, func(lines []string) ([]string, bool) {
		return replaceAt(lines, index, value)
	})
}

func (d Document) AppendListLine(id, value string) Document {
	if strings.TrimSpace(value) == "" {
		value = PlaceholderListLine
	}
	return d.editList(id, func(lines []string) ([]string, bool) {
		return appendItem(lines, value), true
	})
}

func (d Document) InsertListLineAfter(id string, index int) Document {
	return d.editList(id, func(lines []string) ([]string, bool) {
		return insertAfter(lines, index, PlaceholderListLine)
	})
}

func (d Document) MoveListLine(id string, index, dir int) Document {
	return d.editList(id, func(lines []string) ([]string, bool) {
		return moveStep(lines, index, dir)
	})
}

func (d Document) ReorderListLine(id string, from, to int) Document {
	return d.editList(id, func(lines []string) ([]string, bool) {
		return reorder(lines, from, to)
	})
}

// RemoveListLine deletes a line, except that a list is never emptied this
// way: a single line is kept as it is and an empty list collapses to the
// placeholder line.
func (d Document) RemoveListLine(id string, index int) Document {
	return d.editList(id, func(lines []string) ([]string, bool) {
		switch len(lines) {
		case 0:
			return []string{PlaceholderCollapsed}, true
		case 1:
			return lines, false
		}
		return removeAt(lines, index)
	})
}
