package usecase

import (
	"context"
	"strings"

	"resume-editor/internal/apperr"
	"resume-editor/internal/domain"
	"resume-editor/internal/model"
	"resume-editor/pkg/ai"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Target names where generated text lands. Index addresses an experience or
// education item; Field defaults to bullets for experience items.
type Target struct {
	SectionID string `json:"sectionId"`
	Index     *int   `json:"index"`
	Field     string `json:"field" validate:"omitempty,oneof=company role from to bullets school degree"`
}

// AssistResult is the generated text and the draft after it was applied.
type AssistResult struct {
	Text  string        `json:"text"`
	Draft *domain.Draft `json:"draft,omitempty"`
}

// Assistant runs AI requests on behalf of the editor.
type Assistant struct {
	gen    ai.Generator
	editor *Editor
	log    *logrus.Logger
}

func NewAssistant(gen ai.Generator, editor *Editor, log *logrus.Logger) *Assistant {
	return &Assistant{gen: gen, editor: editor, log: log}
}

// Generate passes a request straight to the provider.
func (a *Assistant) Generate(ctx context.Context, req ai.Request) (string, error) {
	const op = "Assistant.Generate"
	text, err := a.gen.Generate(ctx, req)
	if err != nil {
		a.log.WithError(err).WithField("kind", req.Kind).Warn("ai generation failed")
		return "", apperr.E(apperr.CodeUnavailable, op, "AI request failed", err)
	}
	return text, nil
}

// Assist generates text for a draft and applies it to the target. The
// provider is called without holding the draft, so edits made meanwhile are
// kept and the result lands on the newest snapshot. If the target section is
// gone by then the result is dropped.
func (a *Assistant) Assist(ctx context.Context, draftID uuid.UUID, kind ai.Kind, input string, t Target) (*AssistResult, error) {
	const op = "Assistant.Assist"
	if err := validate.Struct(t); err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "invalid target: "+err.Error(), err)
	}
	d, err := a.editor.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input) == "" {
		input = targetText(d.Document, kind, t)
	}

	text, err := a.Generate(ctx, ai.Request{Kind: kind, Input: input})
	if err != nil {
		return nil, err
	}
	if t.SectionID == "" {
		return &AssistResult{Text: text, Draft: d}, nil
	}

	log := a.log.WithFields(logrus.Fields{"draft_id": draftID, "section_id": t.SectionID, "kind": kind})
	next, err := a.editor.mutate(ctx, op, draftID, func(d *domain.Draft) bool {
		doc := applyGenerated(d.Document, kind, text, t)
		if doc.Same(d.Document) {
			log.Info("ai result not applied, target missing or unchanged")
			return false
		}
		d.Document = doc
		return true
	})
	if err != nil {
		return nil, err
	}
	return &AssistResult{Text: text, Draft: next}, nil
}

// targetText is the current text at the target, used when the caller sent
// no input of its own.
func targetText(doc model.Document, kind ai.Kind, t Target) string {
	s, ok := doc.Section(t.SectionID)
	if !ok {
		return ""
	}
	switch b := s.Body.(type) {
	case model.TextBody:
		return b.Content
	case model.ListBody:
		return model.JoinLines(b.Lines)
	case model.SkillsBody:
		return strings.Join(b.Skills, ", ")
	case model.ExperienceBody:
		if t.Index == nil || *t.Index < 0 || *t.Index >= len(b.Items) {
			return ""
		}
		it := b.Items[*t.Index]
		if kind == ai.KindBullets {
			return it.Role + " at " + it.Company + "\n" + it.Bullets
		}
		switch experienceField(t.Field) {
		case model.FieldCompany:
			return it.Company
		case model.FieldRole:
			return it.Role
		default:
			return it.Bullets
		}
	}
	return ""
}

func experienceField(f string) string {
	if f == "" {
		return model.FieldBullets
	}
	return f
}

// applyGenerated writes text into the target. Skills output becomes new
// chips; everything else replaces the addressed content.
func applyGenerated(doc model.Document, kind ai.Kind, text string, t Target) model.Document {
	s, ok := doc.Section(t.SectionID)
	if !ok {
		return doc
	}
	switch s.Kind() {
	case model.KindSkills:
		for _, chip := range splitSkills(text) {
			doc = doc.AppendSkill(t.SectionID, chip)
		}
		return doc
	case model.KindText, model.KindList:
		if kind == ai.KindSkills {
			return doc
		}
		return doc.UpdateContent(t.SectionID, text)
	case model.KindExperience:
		if t.Index == nil {
			return doc
		}
		field := experienceField(t.Field)
		if kind == ai.KindBullets {
			field = model.FieldBullets
		}
		return doc.UpdateExperience(t.SectionID, *t.Index, field, text)
	case model.KindEducation:
		if t.Index == nil || t.Field == "" {
			return doc
		}
		return doc.UpdateEducation(t.SectionID, *t.Index, t.Field, text)
	}
	return doc
}

// splitSkills splits on commas and newlines, trimming and dropping blanks.
func splitSkills(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
