package model

import (
	"encoding/json"
	"fmt"
)

// sectionJSON is the wire shape of a section: a flat object tagged by
// "type". List content travels as newline-joined text.
type sectionJSON struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Placement Placement       `json:"placement"`
	Type      Kind            `json:"type"`
	Content   *string         `json:"content,omitempty"`
	Items     json.RawMessage `json:"items,omitempty"`
	Skills    []string        `json:"skills,omitempty"`
}

func (s Section) MarshalJSON() ([]byte, error) {
	w := sectionJSON{ID: s.ID, Title: s.Title, Placement: s.Placement, Type: s.Kind()}
	switch b := s.Body.(type) {
	case TextBody:
		content := b.Content
		w.Content = &content
	case ListBody:
		content := JoinLines(b.Lines)
		w.Content = &content
	case ExperienceBody:
		items, err := json.Marshal(nonNil(b.Items))
		if err != nil {
			return nil, err
		}
		w.Items = items
	case EducationBody:
		items, err := json.Marshal(nonNil(b.Items))
		if err != nil {
			return nil, err
		}
		w.Items = items
	case SkillsBody:
		w.Skills = nonNil(b.Skills)
	default:
		return nil, fmt.Errorf("section %q has no payload", s.ID)
	}
	return json.Marshal(w)
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var w sectionJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if !w.Placement.Valid() {
		return fmt.Errorf("section %q: invalid placement %q", w.ID, w.Placement)
	}
	out := Section{ID: w.ID, Title: w.Title, Placement: w.Placement}
	switch w.Type {
	case KindText:
		out.Body = TextBody{Content: deref(w.Content)}
	case KindList:
		out.Body = ListBody{Lines: SplitLines(deref(w.Content))}
	case KindExperience:
		var items []Experience
		if len(w.Items) > 0 {
			if err := json.Unmarshal(w.Items, &items); err != nil {
				return fmt.Errorf("section %q: %w", w.ID, err)
			}
		}
		out.Body = ExperienceBody{Items: items}
	case KindEducation:
		var items []Education
		if len(w.Items) > 0 {
			if err := json.Unmarshal(w.Items, &items); err != nil {
				return fmt.Errorf("section %q: %w", w.ID, err)
			}
		}
		out.Body = EducationBody{Items: items}
	case KindSkills:
		out.Body = SkillsBody{Skills: w.Skills}
	default:
		return fmt.Errorf("section %q: unknown type %q", w.ID, w.Type)
	}
	*s = out
	return nil
}

type documentJSON struct {
	Sections []Section `json:"sections"`
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(documentJSON{Sections: nonNil(d.Sections)})
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var w documentJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(w.Sections))
	for _, s := range w.Sections {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	d.Sections = w.Sections
	return nil
}

// ParseDocument validates raw JSON against the document schema and decodes
// it.
func ParseDocument(data []byte) (Document, error) {
	if err := ValidateDocumentJSON(data); err != nil {
		return Document{}, err
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
