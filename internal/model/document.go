package model

// Document is an immutable snapshot of the ordered resume sections. Every
// operation returns a new Document and leaves the receiver untouched.
type Document struct {
	Sections []Section
}

// Seed returns the built-in document a new draft starts from.
func Seed() Document {
	return Document{Sections: []Section{
		{ID: "about", Title: "About Me", Placement: PlacementRight, Body: TextBody{}},
		{ID: "work", Title: "Experience", Placement: PlacementRight, Body: ExperienceBody{Items: []Experience{{
			Company: PlaceholderCompany,
			Role:    PlaceholderRole,
			From:    PlaceholderFrom,
			To:      PlaceholderTo,
			Bullets: "Add bullet points here...",
		}}}},
		{ID: "education", Title: "Education", Placement: PlacementRight, Body: EducationBody{Items: []Education{NewEducation()}}},
		{ID: "skills", Title: "Skills", Placement: PlacementLeft, Body: SkillsBody{Skills: []string{PlaceholderSkill}}},
	}}
}

func (d Document) Len() int { return len(d.Sections) }

// Section looks a section up by id.
func (d Document) Section(id string) (Section, bool) {
	if i := d.indexOf(id); i >= 0 {
		return d.Sections[i], true
	}
	return Section{}, false
}

// IDs returns the section ids in document order.
func (d Document) IDs() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.ID
	}
	return out
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := Document{Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Same reports whether o is d itself, which is what every operation returns
// when it changes nothing.
func (d Document) Same(o Document) bool {
	if len(d.Sections) != len(o.Sections) {
		return false
	}
	return len(d.Sections) == 0 || &d.Sections[0] == &o.Sections[0]
}

func (d Document) indexOf(id string) int {
	for i, s := range d.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (d Document) hasID(id string) bool { return d.indexOf(id) >= 0 }

// edit applies fn to the section with the given id. When the section is
// missing or fn reports no change, d itself is returned.
func (d Document) edit(id string, fn func(Section) (Section, bool)) Document {
	i := d.indexOf(id)
	if i < 0 {
		return d
	}
	next, changed := fn(d.Sections[i])
	if !changed {
		return d
	}
	sections := make([]Section, len(d.Sections))
	copy(sections, d.Sections)
	sections[i] = next
	return Document{Sections: sections}
}

// Visibility maps a section id or a personal-detail key to whether it is
// rendered. A missing key means visible.
type Visibility map[string]bool

// Personal-detail visibility keys.
const (
	KeyPicture  = "picture"
	KeyLocation = "location"
	KeyEmail    = "email"
	KeyPhone    = "phone"
)

// SeedVisibility matches Seed: every seeded section and personal detail on.
func SeedVisibility() Visibility {
	return Visibility{
		KeyPicture:  true,
		"about":     true,
		"work":      true,
		"education": true,
		"skills":    true,
		KeyLocation: true,
		KeyEmail:    true,
		KeyPhone:    true,
	}
}

func (v Visibility) Visible(key string) bool {
	shown, ok := v[key]
	return !ok || shown
}

// Set returns a copy of v with key set to shown.
func (v Visibility) Set(key string, shown bool) Visibility {
	out := make(Visibility, len(v)+1)
	for k, b := range v {
		out[k] = b
	}
	out[key] = shown
	return out
}

type Layout string

const (
	LayoutSplit   Layout = "split"
	LayoutClassic Layout = "classic"
	LayoutHybrid  Layout = "hybrid"
)

type Size string

const (
	SizeSmall  Size = "sm"
	SizeMedium Size = "md"
	SizeLarge  Size = "lg"
)

type Theme struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Themes offered by the editor's color picker.
var Themes = []Theme{
	{Name: "blue", Color: "#2563eb"},
	{Name: "pink", Color: "#c026d3"},
	{Name: "green", Color: "#16a34a"},
	{Name: "orange", Color: "#ea580c"},
	{Name: "black", Color: "#111827"},
}

// Fonts offered by the typography menu.
var Fonts = []string{"Nunito", "Poppins", "Rubik", "Fira Sans", "Josefin Sans", "Inter"}

// Profile holds the flat fields that live outside any section.
type Profile struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Theme    Theme  `json:"theme"`
	Font     string `json:"font"`
	Size     Size   `json:"size"`
	Layout   Layout `json:"layout"`
}

func DefaultProfile() Profile {
	return Profile{
		Name:     "Your Name",
		Role:     "Your Role",
		Location: "City",
		Email:    "you@email.com",
		Phone:    "+123456789",
		Theme:    Theme{Name: "pink", Color: "#c026d3"},
		Font:     "Nunito",
		Size:     SizeMedium,
		Layout:   LayoutSplit,
	}
}
