// Package builder holds the client-side editing state for a portfolio: an
// in-memory draft that is the source of truth while editing, reconciled with
// the server through a debounced auto-save.
package builder

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

// Child entries carry a locally generated identifier until the server assigns
// a durable one; the local id keeps list edits addressable before the first
// save round-trips.

type EducationDraft struct {
	LocalID      string
	ServerID     primitive.ObjectID
	School       string
	Degree       string
	FieldOfStudy string
	StartDate    *time.Time
	EndDate      *time.Time
	Grade        string
	Honors       []string
}

type ExperienceDraft struct {
	LocalID      string
	ServerID     primitive.ObjectID
	Title        string
	Company      string
	Location     string
	StartDate    *time.Time
	EndDate      *time.Time
	Description  string
	Achievements []string

	// Current and EndDate form a derived pair: the date is the persisted
	// truth, the boolean is what the editor toggles. Hydration derives the
	// boolean, the wire transform drops the date when the boolean is set.
	Current bool
}

type ProjectDraft struct {
	LocalID     string
	ServerID    primitive.ObjectID
	Title       string
	Description string
	LiveURL     string
	GithubURL   string
	ImageURL    string
	TechStack   []string
	Featured    bool
}

type SkillDraft struct {
	LocalID  string
	ServerID primitive.ObjectID
	Name     string
	Category string
	Level    int
}

// Draft is the editable in-memory portfolio.
type Draft struct {
	PersonalInfo    models.PersonalInfo
	Education       []EducationDraft
	Experiences     []ExperienceDraft
	Projects        []ProjectDraft
	Skills          []SkillDraft
	SectionOrder    []string
	EnabledSections []string
}

// NewLocalID generates a client-local entry identifier.
func NewLocalID() string {
	return uuid.NewString()
}

func localID(serverID primitive.ObjectID) string {
	if serverID.IsZero() {
		return NewLocalID()
	}
	return serverID.Hex()
}

// DefaultDraft is the deterministic fallback used when the server has no
// portfolio yet: all lists empty, full section universe ordered and enabled.
func DefaultDraft() *Draft {
	return &Draft{
		PersonalInfo:    *models.DefaultPersonalInfo(),
		Education:       []EducationDraft{},
		Experiences:     []ExperienceDraft{},
		Projects:        []ProjectDraft{},
		Skills:          []SkillDraft{},
		SectionOrder:    append([]string{}, models.SectionUniverse...),
		EnabledSections: append([]string{}, models.SectionUniverse...),
	}
}

// HydrateDraft builds a draft from a server record. The experience "current"
// flag is derived from the absence of an end date.
func HydrateDraft(p *models.Portfolio) *Draft {
	d := DefaultDraft()

	if p.PersonalInfo != nil {
		d.PersonalInfo = *p.PersonalInfo
	}
	if len(p.SectionOrder) > 0 {
		d.SectionOrder = append([]string{}, p.SectionOrder...)
	}
	d.EnabledSections = append([]string{}, p.EnabledSections...)

	for _, e := range p.Education {
		d.Education = append(d.Education, EducationDraft{
			LocalID:      localID(e.Id),
			ServerID:     e.Id,
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			Grade:        e.Grade,
			Honors:       append([]string{}, e.Honors...),
		})
	}
	for _, e := range p.Experience {
		d.Experiences = append(d.Experiences, ExperienceDraft{
			LocalID:      localID(e.Id),
			ServerID:     e.Id,
			Title:        e.Title,
			Company:      e.Company,
			Location:     e.Location,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			Description:  e.Description,
			Achievements: append([]string{}, e.Achievements...),
			Current:      e.EndDate == nil,
		})
	}
	for _, pr := range p.Projects {
		d.Projects = append(d.Projects, ProjectDraft{
			LocalID:     localID(pr.Id),
			ServerID:    pr.Id,
			Title:       pr.Title,
			Description: pr.Description,
			LiveURL:     pr.LiveURL,
			GithubURL:   pr.GithubURL,
			ImageURL:    pr.ImageURL,
			TechStack:   append([]string{}, pr.TechStack...),
			Featured:    pr.Featured,
		})
	}
	for _, s := range p.Skills {
		d.Skills = append(d.Skills, SkillDraft{
			LocalID:  localID(s.Id),
			ServerID: s.Id,
			Name:     s.Name,
			Category: s.Category,
			Level:    s.Level,
		})
	}
	return d
}

func filterBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// ToPatch transforms the draft into the service's wire shape. Every
// top-level field is submitted, so the save replaces the whole document
// contents; an experience marked current is sent with no end date at all.
func (d *Draft) ToPatch() *models.PortfolioPatch {
	info := d.PersonalInfo

	education := make([]models.Education, 0, len(d.Education))
	for _, e := range d.Education {
		education = append(education, models.Education{
			Id:           e.ServerID,
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			StartDate:    e.StartDate,
			EndDate:      e.EndDate,
			Grade:        e.Grade,
			Honors:       filterBlank(e.Honors),
		})
	}

	experience := make([]models.Experience, 0, len(d.Experiences))
	for _, e := range d.Experiences {
		endDate := e.EndDate
		if e.Current {
			endDate = nil
		}
		experience = append(experience, models.Experience{
			Id:           e.ServerID,
			Title:        e.Title,
			Company:      e.Company,
			Location:     e.Location,
			StartDate:    e.StartDate,
			EndDate:      endDate,
			Description:  e.Description,
			Achievements: filterBlank(e.Achievements),
		})
	}

	projects := make([]models.Project, 0, len(d.Projects))
	for _, p := range d.Projects {
		projects = append(projects, models.Project{
			Id:          p.ServerID,
			Title:       p.Title,
			Description: p.Description,
			LiveURL:     p.LiveURL,
			GithubURL:   p.GithubURL,
			ImageURL:    p.ImageURL,
			TechStack:   filterBlank(p.TechStack),
			Featured:    p.Featured,
		})
	}

	skills := make([]models.Skill, 0, len(d.Skills))
	for _, s := range d.Skills {
		skills = append(skills, models.Skill{
			Id:       s.ServerID,
			Name:     s.Name,
			Category: s.Category,
			Level:    s.Level,
		})
	}

	order := append([]string{}, d.SectionOrder...)
	enabled := append([]string{}, d.EnabledSections...)

	return &models.PortfolioPatch{
		PersonalInfo:    &info,
		Education:       &education,
		Experience:      &experience,
		Projects:        &projects,
		Skills:          &skills,
		SectionOrder:    &order,
		EnabledSections: &enabled,
	}
}
