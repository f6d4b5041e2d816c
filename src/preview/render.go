// Package preview turns a portfolio document plus a theme selection into the
// themed section view models served by the public preview endpoint. Rendering
// is a pure transform: no I/O, no mutation of the input.
package preview

import (
	"sort"
	"time"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

type Theme string

const (
	ThemeProfessional Theme = "professional"
	ThemeCreative     Theme = "creative"
	ThemeElegant      Theme = "elegant"
)

// Palette holds the accent colors of a theme.
type Palette struct {
	Name      string   `json:"name"`
	Tagline   string   `json:"tagline"`
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary"`
	Accent    string   `json:"accent"`
	Shades    []string `json:"shades"`
}

var palettes = map[Theme]Palette{
	ThemeProfessional: {
		Name:      "Professional",
		Tagline:   "Clean and corporate design",
		Primary:   "#3b82f6",
		Secondary: "#2563eb",
		Accent:    "#1d4ed8",
		Shades:    []string{"#3b82f6", "#2563eb", "#1d4ed8"},
	},
	ThemeCreative: {
		Name:      "Creative",
		Tagline:   "Bold and artistic design",
		Primary:   "#a855f7",
		Secondary: "#9333ea",
		Accent:    "#7e22ce",
		Shades:    []string{"#a855f7", "#9333ea", "#7e22ce"},
	},
	ThemeElegant: {
		Name:      "Elegant",
		Tagline:   "Sophisticated and minimal",
		Primary:   "#22c55e",
		Secondary: "#16a34a",
		Accent:    "#15803d",
		Shades:    []string{"#22c55e", "#16a34a", "#15803d"},
	},
}

// DefaultTheme is used when the caller does not pick one.
const DefaultTheme = ThemeProfessional

// ParseTheme maps a raw selector to a known theme, falling back to the default.
func ParseTheme(raw string) Theme {
	t := Theme(raw)
	if _, ok := palettes[t]; ok {
		return t
	}
	return DefaultTheme
}

// ExperienceView is an experience entry prepared for display.
type ExperienceView struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Period       string   `json:"period"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

type EducationView struct {
	School       string   `json:"school"`
	Degree       string   `json:"degree"`
	FieldOfStudy string   `json:"fieldOfStudy"`
	Period       string   `json:"period"`
	Grade        string   `json:"grade"`
	Honors       []string `json:"honors"`
}

type SkillGroup struct {
	Category string         `json:"category"`
	Skills   []models.Skill `json:"skills"`
}

// Section is one display block of the rendered page.
type Section struct {
	ID          string               `json:"id"`
	Personal    *models.PersonalInfo `json:"personal,omitempty"`
	Experiences []ExperienceView     `json:"experiences,omitempty"`
	Projects    []models.Project     `json:"projects,omitempty"`
	SkillGroups []SkillGroup         `json:"skillGroups,omitempty"`
	Education   []EducationView      `json:"education,omitempty"`
	Contact     *models.ContactInfo  `json:"contact,omitempty"`
}

// Page is the fully themed preview.
type Page struct {
	Theme    Theme     `json:"theme"`
	Palette  Palette   `json:"palette"`
	Sections []Section `json:"sections"`
}

// Render produces the themed page for a portfolio. Sections are emitted in
// the portfolio's section order, skipping disabled ones.
func Render(p *models.Portfolio, theme Theme) *Page {
	palette, ok := palettes[theme]
	if !ok {
		theme = DefaultTheme
		palette = palettes[theme]
	}

	info := p.PersonalInfo
	if info == nil {
		info = models.DefaultPersonalInfo()
	}

	enabled := make(map[string]bool, len(p.EnabledSections))
	for _, s := range p.EnabledSections {
		enabled[s] = true
	}

	page := &Page{Theme: theme, Palette: palette, Sections: []Section{}}
	for _, id := range p.SectionOrder {
		if !enabled[id] {
			continue
		}
		switch id {
		case "about":
			page.Sections = append(page.Sections, Section{ID: id, Personal: info})
		case "experience":
			page.Sections = append(page.Sections, Section{ID: id, Experiences: experienceViews(p.Experience)})
		case "projects":
			page.Sections = append(page.Sections, Section{ID: id, Projects: orderProjects(p.Projects)})
		case "skills":
			page.Sections = append(page.Sections, Section{ID: id, SkillGroups: groupSkills(p.Skills)})
		case "education":
			page.Sections = append(page.Sections, Section{ID: id, Education: educationViews(p.Education)})
		case "contact":
			contact := info.ContactInfo
			page.Sections = append(page.Sections, Section{ID: id, Contact: &contact})
		}
	}
	return page
}

func formatPeriod(start, end *time.Time) string {
	const layout = "Jan 2006"
	from := ""
	if start != nil {
		from = start.Format(layout)
	}
	to := "Present"
	if end != nil {
		to = end.Format(layout)
	}
	if from == "" {
		return to
	}
	return from + " – " + to
}

func experienceViews(entries []models.Experience) []ExperienceView {
	views := make([]ExperienceView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ExperienceView{
			Title:        e.Title,
			Company:      e.Company,
			Location:     e.Location,
			Period:       formatPeriod(e.StartDate, e.EndDate),
			Current:      e.EndDate == nil,
			Description:  e.Description,
			Achievements: e.Achievements,
		})
	}
	return views
}

func educationViews(entries []models.Education) []EducationView {
	views := make([]EducationView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EducationView{
			School:       e.School,
			Degree:       e.Degree,
			FieldOfStudy: e.FieldOfStudy,
			Period:       formatPeriod(e.StartDate, e.EndDate),
			Grade:        e.Grade,
			Honors:       e.Honors,
		})
	}
	return views
}

// orderProjects puts featured projects first while keeping the submitted
// order within each group.
func orderProjects(projects []models.Project) []models.Project {
	ordered := append([]models.Project{}, projects...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Featured && !ordered[j].Featured
	})
	return ordered
}

// groupSkills buckets skills by category, categories in first-seen order.
func groupSkills(skills []models.Skill) []SkillGroup {
	index := make(map[string]int)
	groups := []SkillGroup{}
	for _, s := range skills {
		category := s.Category
		if category == "" {
			category = "Technical"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}
