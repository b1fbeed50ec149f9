package model

// Kind selects a section's payload. It is fixed when the section is created.
type Kind string

const (
	KindText       Kind = "text"
	KindList       Kind = "list"
	KindExperience Kind = "experience"
	KindEducation  Kind = "education"
	KindSkills     Kind = "skills"
)

func (k Kind) Valid() bool {
	switch k {
	case KindText, KindList, KindExperience, KindEducation, KindSkills:
		return true
	}
	return false
}

// Placement is the column a section renders in under a two-column layout.
type Placement string

const (
	PlacementLeft  Placement = "left"
	PlacementRight Placement = "right"
)

func (p Placement) Valid() bool {
	return p == PlacementLeft || p == PlacementRight
}

// Placeholder values used when items are created without user input.
const (
	PlaceholderCompany  = "Company"
	PlaceholderRole     = "Role"
	PlaceholderFrom     = "From"
	PlaceholderTo       = "Until"
	PlaceholderSchool   = "School"
	PlaceholderDegree   = "Degree"
	PlaceholderSkill    = "Skill"
	PlaceholderListLine = "New item"
	// PlaceholderCollapsed is what an empty list collapses to when a line
	// removal is attempted on it.
	PlaceholderCollapsed = "Item"
)

// Field names addressable on experience and education entries.
const (
	FieldCompany = "company"
	FieldRole    = "role"
	FieldFrom    = "from"
	FieldTo      = "to"
	FieldBullets = "bullets"
	FieldSchool  = "school"
	FieldDegree  = "degree"
)

type Experience struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	From    string `json:"from"`
	To      string `json:"to"`
	Bullets string `json:"bullets"` // newline-joined
}

func NewExperience() Experience {
	return Experience{Company: PlaceholderCompany, Role: PlaceholderRole, From: PlaceholderFrom, To: PlaceholderTo}
}

// With returns a copy with the named field replaced. ok is false for
// unknown field names.
func (e Experience) With(field, value string) (Experience, bool) {
	switch field {
	case FieldCompany:
		e.Company = value
	case FieldRole:
		e.Role = value
	case FieldFrom:
		e.From = value
	case FieldTo:
		e.To = value
	case FieldBullets:
		e.Bullets = value
	default:
		return e, false
	}
	return e, true
}

type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	From   string `json:"from"`
	To     string `json:"to"`
}

func NewEducation() Education {
	return Education{School: PlaceholderSchool, Degree: PlaceholderDegree, From: PlaceholderFrom, To: PlaceholderTo}
}

func (e Education) With(field, value string) (Education, bool) {
	switch field {
	case FieldSchool:
		e.School = value
	case FieldDegree:
		e.Degree = value
	case FieldFrom:
		e.From = value
	case FieldTo:
		e.To = value
	default:
		return e, false
	}
	return e, true
}

// Payload is the closed set of section bodies. Only the types in this
// package implement it.
type Payload interface {
	Kind() Kind
	clone() Payload
}

type TextBody struct {
	Content string
}

// ListBody holds the rendered lines of a list section. Lines never contain
// empty strings or newline characters.
type ListBody struct {
	Lines []string
}

type ExperienceBody struct {
	Items []Experience
}

type EducationBody struct {
	Items []Education
}

type SkillsBody struct {
	Skills []string
}

func (TextBody) Kind() Kind       { return KindText }
func (ListBody) Kind() Kind       { return KindList }
func (ExperienceBody) Kind() Kind { return KindExperience }
func (EducationBody) Kind() Kind  { return KindEducation }
func (SkillsBody) Kind() Kind     { return KindSkills }

func (b TextBody) clone() Payload       { return b }
func (b ListBody) clone() Payload       { return ListBody{Lines: cloneSlice(b.Lines)} }
func (b ExperienceBody) clone() Payload { return ExperienceBody{Items: cloneSlice(b.Items)} }
func (b EducationBody) clone() Payload  { return EducationBody{Items: cloneSlice(b.Items)} }
func (b SkillsBody) clone() Payload     { return SkillsBody{Skills: cloneSlice(b.Skills)} }

// Section is a titled, positioned block of resume content.
type Section struct {
	ID        string
	Title     string
	Placement Placement
	Body      Payload
}

func (s Section) Kind() Kind {
	if s.Body == nil {
		return ""
	}
	return s.Body.Kind()
}

// Clone returns a deep copy of s.
func (s Section) Clone() Section {
	if s.Body != nil {
		s.Body = s.Body.clone()
	}
	return s
}

// Len reports the number of items in a multi-item section, or the number
// of lines of a list section. Text sections report 0.
func (s Section) Len() int {
	switch b := s.Body.(type) {
	case ListBody:
		return len(b.Lines)
	case ExperienceBody:
		return len(b.Items)
	case EducationBody:
		return len(b.Items)
	case SkillsBody:
		return len(b.Skills)
	}
	return 0
}

func defaultTitle(k Kind) string {
	switch k {
	case KindList:
		return "List"
	case KindText:
		return "Text"
	case KindExperience:
		return "Experience"
	case KindEducation:
		return "Education"
	case KindSkills:
		return "Skills"
	}
	return ""
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
