package usecase

import (
	"slices"

	"resume-editor/internal/model"

	"github.com/go-playground/validator/v10"
)

// Command names accepted by Editor.Apply.
const (
	OpUpdateContent         = "update_content"
	OpRenameSection         = "rename_section"
	OpUpdateExperience      = "update_experience"
	OpUpdateEducation       = "update_education"
	OpUpdateSkill           = "update_skill"
	OpUpdateListLine        = "update_list_line"
	OpAppendExperience      = "append_experience"
	OpAppendEducation       = "append_education"
	OpAppendSkill           = "append_skill"
	OpAppendListLine        = "append_list_line"
	OpInsertExperienceAfter = "insert_experience_after"
	OpInsertEducationAfter  = "insert_education_after"
	OpInsertListLineAfter   = "insert_list_line_after"
	OpMoveExperience        = "move_experience"
	OpMoveEducation         = "move_education"
	OpMoveListLine          = "move_list_line"
	OpMoveSection           = "move_section"
	OpReorderExperience     = "reorder_experience"
	OpReorderEducation      = "reorder_education"
	OpReorderSkill          = "reorder_skill"
	OpReorderListLine       = "reorder_list_line"
	OpRemoveExperience      = "remove_experience"
	OpRemoveEducation       = "remove_education"
	OpRemoveSkill           = "remove_skill"
	OpRemoveListLine        = "remove_list_line"
	OpAddSection            = "add_section"
	OpRemoveSection         = "remove_section"
)

// Command is one document mutation as sent by the editor.
type Command struct {
	Op        string          `json:"op" validate:"required,oneof=update_content rename_section update_experience update_education update_skill update_list_line append_experience append_education append_skill append_list_line insert_experience_after insert_education_after insert_list_line_after move_experience move_education move_list_line move_section reorder_experience reorder_education reorder_skill reorder_list_line remove_experience remove_education remove_skill remove_list_line add_section remove_section"`
	SectionID string          `json:"sectionId" validate:"required_unless=Op move_section Op add_section"`
	Index     int             `json:"index"`
	From      int             `json:"from"`
	To        int             `json:"to"`
	Dir       int             `json:"dir" validate:"omitempty,oneof=-1 1"`
	Field     string          `json:"field" validate:"omitempty,oneof=company role from to bullets school degree"`
	Value     string          `json:"value"`
	Kind      model.Kind      `json:"kind" validate:"required_if=Op add_section,omitempty,oneof=text list"`
	Placement model.Placement `json:"placement" validate:"required_if=Op add_section,omitempty,oneof=left right"`
}

var validate = newValidator()

// newValidator adds the "font" tag, which admits only the offered fonts.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("font", func(fl validator.FieldLevel) bool {
		return slices.Contains(model.Fonts, fl.Field().String())
	})
	return v
}

// Validate checks the command's shape. A well-formed command may still be a
// no-op against a particular document.
func (c Command) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	switch c.Op {
	case OpMoveExperience, OpMoveEducation, OpMoveListLine, OpMoveSection:
		if c.Dir == 0 {
			return errMissingDir
		}
	case OpUpdateExperience, OpUpdateEducation:
		if c.Field == "" {
			return errMissingField
		}
	}
	return nil
}

// apply runs the command against a snapshot. Visibility only changes when a
// section is removed.
func (c Command) apply(doc model.Document, vis model.Visibility) (model.Document, model.Visibility) {
	id := c.SectionID
	switch c.Op {
	case OpUpdateContent:
		return doc.UpdateContent(id, c.Value), vis
	case OpRenameSection:
		return doc.RenameSection(id, c.Value), vis
	case OpUpdateExperience:
		return doc.UpdateExperience(id, c.Index, c.Field, c.Value), vis
	case OpUpdateEducation:
		return doc.UpdateEducation(id, c.Index, c.Field, c.Value), vis
	case OpUpdateSkill:
		return doc.UpdateSkill(id, c.Index, c.Value), vis
	case OpUpdateListLine:
		return doc.UpdateListLine(id, c.Index, c.Value), vis
	case OpAppendExperience:
		return doc.AppendExperience(id), vis
	case OpAppendEducation:
		return doc.AppendEducation(id), vis
	case OpAppendSkill:
		return doc.AppendSkill(id, c.Value), vis
	case OpAppendListLine:
		return doc.AppendListLine(id, c.Value), vis
	case OpInsertExperienceAfter:
		return doc.InsertExperienceAfter(id, c.Index), vis
	case OpInsertEducationAfter:
		return doc.InsertEducationAfter(id, c.Index), vis
	case OpInsertListLineAfter:
		return doc.InsertListLineAfter(id, c.Index), vis
	case OpMoveExperience:
		return doc.MoveExperience(id, c.Index, c.Dir), vis
	case OpMoveEducation:
		return doc.MoveEducation(id, c.Index, c.Dir), vis
	case OpMoveListLine:
		return doc.MoveListLine(id, c.Index, c.Dir), vis
	case OpMoveSection:
		return doc.MoveSection(c.Index, c.Dir), vis
	case OpReorderExperience:
		return doc.ReorderExperience(id, c.From, c.To), vis
	case OpReorderEducation:
		return doc.ReorderEducation(id, c.From, c.To), vis
	case OpReorderSkill:
		return doc.ReorderSkill(id, c.From, c.To), vis
	case OpReorderListLine:
		return doc.ReorderListLine(id, c.From, c.To), vis
	case OpRemoveExperience:
		return doc.RemoveExperience(id, c.Index), vis
	case OpRemoveEducation:
		return doc.RemoveEducation(id, c.Index), vis
	case OpRemoveSkill:
		return doc.RemoveSkill(id, c.Index), vis
	case OpRemoveListLine:
		return doc.RemoveListLine(id, c.Index), vis
	case OpAddSection:
		return doc.AddSection(c.Kind, c.Placement), vis
	case OpRemoveSection:
		return model.RemoveSection(doc, vis, id)
	}
	return doc, vis
}
