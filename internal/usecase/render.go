package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resume-editor/internal/domain"
	"resume-editor/internal/model"
)

//go:embed templates/resume.html
var templateFS embed.FS

var resumeTpl = template.Must(template.New("resume.html").ParseFS(templateFS, "templates/resume.html"))

var fontSizes = map[model.Size]string{
	model.SizeSmall:  "13px",
	model.SizeMedium: "15px",
	model.SizeLarge:  "17px",
}

// Page is everything the resume template needs.
type Page struct {
	Document   model.Document
	Visibility model.Visibility
	Profile    model.Profile
	Picture    string // data URL or link; empty renders no picture
}

// PageFromDraft builds the page for a stored draft.
func PageFromDraft(d *domain.Draft) Page {
	p := Page{Document: d.Document, Visibility: d.Visibility, Profile: d.Profile}
	if d.Markup != nil {
		p.Picture = d.Markup.ProfileImage
	}
	return p
}

type experienceView struct {
	model.Experience
	Lines []string
}

type sectionView struct {
	ID         string
	Title      string
	Kind       model.Kind
	Content    string
	Lines      []string
	Experience []experienceView
	Education  []model.Education
	Skills     []string
}

type pageView struct {
	Profile      model.Profile
	FontSize     string
	SingleColumn bool
	Picture      template.URL
	ShowLocation bool
	ShowEmail    bool
	ShowPhone    bool
	Left         []sectionView
	Right        []sectionView
	All          []sectionView
}

// RenderPage renders a standalone HTML page. Hidden sections are left out
// and the classic layout stacks everything in one column.
func RenderPage(p Page) (string, error) {
	size, ok := fontSizes[p.Profile.Size]
	if !ok {
		size = fontSizes[model.SizeMedium]
	}
	v := pageView{
		Profile:      p.Profile,
		FontSize:     size,
		SingleColumn: p.Profile.Layout == model.LayoutClassic,
		ShowLocation: p.Visibility.Visible(model.KeyLocation) && p.Profile.Location != "",
		ShowEmail:    p.Visibility.Visible(model.KeyEmail) && p.Profile.Email != "",
		ShowPhone:    p.Visibility.Visible(model.KeyPhone) && p.Profile.Phone != "",
	}
	if p.Visibility.Visible(model.KeyPicture) {
		v.Picture = pictureURL(p.Picture)
	}
	for _, s := range p.Document.Sections {
		if !p.Visibility.Visible(s.ID) {
			continue
		}
		sv := toView(s)
		v.All = append(v.All, sv)
		if s.Placement == model.PlacementLeft {
			v.Left = append(v.Left, sv)
		} else {
			v.Right = append(v.Right, sv)
		}
	}

	var buf bytes.Buffer
	if err := resumeTpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render resume: %w", err)
	}
	return buf.String(), nil
}

func RenderDraft(d *domain.Draft) (string, error) {
	return RenderPage(PageFromDraft(d))
}

// pictureURL admits inline image data and web links. html/template would
// otherwise blank any data: URL.
func pictureURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}

func toView(s model.Section) sectionView {
	v := sectionView{ID: s.ID, Title: s.Title, Kind: s.Kind()}
	switch b := s.Body.(type) {
	case model.TextBody:
		v.Content = b.Content
	case model.ListBody:
		v.Lines = b.Lines
	case model.ExperienceBody:
		for _, it := range b.Items {
			v.Experience = append(v.Experience, experienceView{Experience: it, Lines: model.SplitLines(it.Bullets)})
		}
	case model.EducationBody:
		v.Education = b.Items
	case model.SkillsBody:
		v.Skills = b.Skills
	}
	return v
}
