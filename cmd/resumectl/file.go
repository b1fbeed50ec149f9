package main

import (
	"encoding/json"
	"fmt"
	"os"

	"resume-editor/internal/model"
	"resume-editor/internal/usecase"
)

// resumeFile is what resumectl reads and writes: a document plus the
// profile and visibility needed to render it. A bare document is accepted
// too and gets the default profile.
type resumeFile struct {
	Profile    *model.Profile   `json:"profile,omitempty"`
	Visibility model.Visibility `json:"visibility,omitempty"`
	Document   json.RawMessage  `json:"document,omitempty"`
	Sections   json.RawMessage  `json:"sections,omitempty"`
}

func loadPage(path string) (usecase.Page, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return usecase.Page{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var f resumeFile
	if err := json.Unmarshal(b, &f); err != nil {
		return usecase.Page{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	raw := f.Document
	if f.Sections != nil {
		raw = b
	}
	if raw == nil {
		return usecase.Page{}, fmt.Errorf("%s holds no document", path)
	}
	doc, err := model.ParseDocument(raw)
	if err != nil {
		return usecase.Page{}, err
	}

	p := usecase.Page{Document: doc, Visibility: f.Visibility, Profile: model.DefaultProfile()}
	if f.Profile != nil {
		p.Profile = *f.Profile
	}
	if p.Visibility == nil {
		p.Visibility = model.Visibility{}
	}
	return p, nil
}
