package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Group limits mirror the column sizes of the groups table.
const (
	MaxGroupTitleLength = 200
	MaxGroupSlugLength  = 200
)

var groupSlugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// Group is a themed collection of posts addressed by its slug.
type Group struct {
	ID          int64
	Title       string
	Slug        string
	Description string
}

// NewGroup builds a validated group. When slug is empty it is derived from
// the title with DeriveSlug, so persistence never has to fill it in.
func NewGroup(title, slug, description string) (*Group, error) {
	g := &Group{
		Title:       strings.TrimSpace(title),
		Slug:        strings.TrimSpace(slug),
		Description: description,
	}
	if g.Slug == "" {
		g.Slug = DeriveSlug(g.Title)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// String returns the group title.
func (g *Group) String() string {
	return g.Title
}

// Validate checks title and slug constraints.
func (g *Group) Validate() error {
	if g.Title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(g.Title) > MaxGroupTitleLength {
		return &ValidationError{Field: "title", Message: "too long"}
	}
	if g.Slug == "" {
		return &ValidationError{Field: "slug", Message: "is required"}
	}
	if len(g.Slug) > MaxGroupSlugLength {
		return &ValidationError{Field: "slug", Message: "too long"}
	}
	if !groupSlugPattern.MatchString(g.Slug) {
		return &ValidationError{Field: "slug", Message: "must contain only latin letters, digits, hyphens and underscores"}
	}
	return nil
}
