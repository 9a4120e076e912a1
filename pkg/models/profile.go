// Package models defines the profile data that folio renders.
package models

import "fmt"

// Profile is the full profile document loaded from profile.json / profile.yaml.
type Profile struct {
	PersonalInfo   PersonalInfo `json:"personalInfo"             yaml:"personalInfo"`
	About          string       `json:"about,omitempty"          yaml:"about,omitempty"`
	Skills         []Skill      `json:"skills,omitempty"         yaml:"skills,omitempty"`
	Experience     []Experience `json:"experience,omitempty"     yaml:"experience,omitempty"`
	Projects       []Project    `json:"projects,omitempty"       yaml:"projects,omitempty"`
	TimeActivities []Activity   `json:"timeActivities"           yaml:"timeActivities"`
	Writing        *Writing     `json:"writing,omitempty"        yaml:"writing,omitempty"`
}

// PersonalInfo holds the header block of the page.
type PersonalInfo struct {
	Name     string `json:"name"               yaml:"name"`
	Title    string `json:"title"              yaml:"title"`
	Email    string `json:"email,omitempty"    yaml:"email,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Avatar   string `json:"avatar,omitempty"   yaml:"avatar,omitempty"` // e.g. "/images/avatar.jpg"
	Links    []Link `json:"links,omitempty"    yaml:"links,omitempty"`
}

// Link is a labelled external link (GitHub, LinkedIn, ...).
type Link struct {
	Label string `json:"label"          yaml:"label"`
	URL   string `json:"url"            yaml:"url"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"` // Font Awesome class
}

// Skill is a single skill with a 0-100 proficiency level.
type Skill struct {
	Name  string `json:"name"  yaml:"name"`
	Level int    `json:"level" yaml:"level"`
}

// Experience is one position in the work history.
type Experience struct {
	Role        string `json:"role"                  yaml:"role"`
	Company     string `json:"company"               yaml:"company"`
	Period      string `json:"period"                yaml:"period"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Project is a showcased project.
type Project struct {
	Name        string   `json:"name"                  yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string   `json:"url,omitempty"         yaml:"url,omitempty"`
	Tags        []string `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// Activity is one time-allocation entry of a typical day.
// Order matters: it is the draw order of both charts.
type Activity struct {
	Label string  `json:"activity" yaml:"activity"`
	Hours float64 `json:"hours"    yaml:"hours"`
	Color string  `json:"color"    yaml:"color"`
}

// Writing points at an RSS/Atom feed file whose newest entries are listed on the page.
type Writing struct {
	Feed  string `json:"feed"            yaml:"feed"` // relative to the profile file
	Limit int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// Post is a feed entry flattened for the templates.
type Post struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published,omitempty"`
}

// PageTitle returns the document title shared by the dynamic and static page.
func (p *Profile) PageTitle() string {
	return fmt.Sprintf("%s - %s", p.PersonalInfo.Name, p.PersonalInfo.Title)
}

// TotalHours sums the hours of all activities.
func (p *Profile) TotalHours() float64 {
	var total float64
	for _, a := range p.TimeActivities {
		total += a.Hours
	}
	return total
}
