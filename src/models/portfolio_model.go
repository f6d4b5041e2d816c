package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SectionUniverse is the full set of known portfolio sections, in default
// display order.
var SectionUniverse = []string{"about", "experience", "projects", "skills", "education", "contact"}

type SocialLinks struct {
	Resume   string `json:"resume" bson:"resume"`
	Github   string `json:"github" bson:"github"`
	Linkedin string `json:"linkedin" bson:"linkedin"`
	Twitter  string `json:"twitter" bson:"twitter"`
	Facebook string `json:"facebook" bson:"facebook"`
	Whatsapp string `json:"whatsapp" bson:"whatsapp"`
}

type ContactInfo struct {
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
}

type PersonalInfo struct {
	Name         string      `json:"name" bson:"name"`
	Email        string      `json:"email" bson:"email"`
	Title        string      `json:"title" bson:"title"`
	Slogan       string      `json:"slogan" bson:"slogan"`
	Bio          string      `json:"bio" bson:"bio"`
	ProfileImage string      `json:"profileImage" bson:"profileImage"`
	SocialLinks  SocialLinks `json:"socialLinks" bson:"socialLinks"`
	ContactInfo  ContactInfo `json:"contactInfo" bson:"contactInfo"`
}

type Education struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	School       string             `json:"school" bson:"school"`
	Degree       string             `json:"degree" bson:"degree"`
	FieldOfStudy string             `json:"fieldOfStudy" bson:"fieldOfStudy"`
	StartDate    *time.Time         `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Grade        string             `json:"grade" bson:"grade"`
	Honors       []string           `json:"honors" bson:"honors"`
}

// Experience models one work entry. An absent EndDate means the position is
// current; no separate boolean is persisted.
type Experience struct {
	Id           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Company      string             `json:"company" bson:"company"`
	Location     string             `json:"location" bson:"location"`
	StartDate    *time.Time         `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      *time.Time         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description  string             `json:"description" bson:"description"`
	Achievements []string           `json:"achievements" bson:"achievements"`
}

type Project struct {
	Id          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	LiveURL     string             `json:"liveurl" bson:"liveurl"`
	GithubURL   string             `json:"githuburl" bson:"githuburl"`
	ImageURL    string             `json:"imageUrl" bson:"imageUrl"`
	TechStack   []string           `json:"techStack" bson:"techStack"`
	Featured    bool               `json:"featured" bson:"featured"`
}

type Skill struct {
	Id       primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Category string             `json:"category" bson:"category"`
	Level    int                `json:"level" bson:"level"`
}

// Portfolio is the single per-user document aggregating personal info and the
// four child-entry collections. PersonalInfo is a pointer so legacy records
// that never set the block can be told apart from an explicitly empty one.
type Portfolio struct {
	Id              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User            primitive.ObjectID `json:"user" bson:"user"`
	PersonalInfo    *PersonalInfo      `json:"personalInfo" bson:"personalInfo,omitempty"`
	Education       []Education        `json:"education" bson:"education"`
	Experience      []Experience       `json:"experience" bson:"experience"`
	Projects        []Project          `json:"projects" bson:"projects"`
	Skills          []Skill            `json:"skills" bson:"skills"`
	SectionOrder    []string           `json:"sectionOrder" bson:"sectionOrder"`
	EnabledSections []string           `json:"enabledSections" bson:"enabledSections"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PortfolioPatch is a partial top-level update. A nil field is left untouched;
// a present field fully replaces the stored value, arrays included.
type PortfolioPatch struct {
	PersonalInfo    *PersonalInfo `json:"personalInfo"`
	Education       *[]Education  `json:"education"`
	Experience      *[]Experience `json:"experience"`
	Projects        *[]Project    `json:"projects"`
	Skills          *[]Skill      `json:"skills"`
	SectionOrder    *[]string     `json:"sectionOrder"`
	EnabledSections *[]string     `json:"enabledSections"`
}

// Apply merges the patch into the portfolio as a shallow top-level merge.
func (p *PortfolioPatch) Apply(pf *Portfolio) {
	if p.PersonalInfo != nil {
		info := *p.PersonalInfo
		pf.PersonalInfo = &info
	}
	if p.Education != nil {
		pf.Education = append([]Education{}, (*p.Education)...)
	}
	if p.Experience != nil {
		pf.Experience = append([]Experience{}, (*p.Experience)...)
	}
	if p.Projects != nil {
		pf.Projects = append([]Project{}, (*p.Projects)...)
	}
	if p.Skills != nil {
		pf.Skills = append([]Skill{}, (*p.Skills)...)
	}
	if p.SectionOrder != nil {
		pf.SectionOrder = append([]string{}, (*p.SectionOrder)...)
	}
	if p.EnabledSections != nil {
		pf.EnabledSections = append([]string{}, (*p.EnabledSections)...)
	}
}

// DefaultPersonalInfo returns the canonical all-empty personal info skeleton.
func DefaultPersonalInfo() *PersonalInfo {
	return &PersonalInfo{}
}

// DefaultPortfolio returns the default skeleton for a fresh owner: empty
// personal info, empty child lists, and the full section universe both ordered
// and enabled.
func DefaultPortfolio(owner primitive.ObjectID) *Portfolio {
	return &Portfolio{
		User:            owner,
		PersonalInfo:    DefaultPersonalInfo(),
		Education:       []Education{},
		Experience:      []Experience{},
		Projects:        []Project{},
		Skills:          []Skill{},
		SectionOrder:    append([]string{}, SectionUniverse...),
		EnabledSections: append([]string{}, SectionUniverse...),
	}
}

// NormalizeSections canonicalizes the two section lists so they can never
// drift from the known universe: the submitted relative order is kept, unknown
// identifiers are dropped, missing sections are appended in default order, and
// the enabled set is deduped and restricted to the universe.
func (pf *Portfolio) NormalizeSections() {
	known := make(map[string]bool, len(SectionUniverse))
	for _, s := range SectionUniverse {
		known[s] = true
	}

	seen := make(map[string]bool, len(SectionUniverse))
	order := make([]string, 0, len(SectionUniverse))
	for _, s := range pf.SectionOrder {
		if known[s] && !seen[s] {
			seen[s] = true
			order = append(order, s)
		}
	}
	for _, s := range SectionUniverse {
		if !seen[s] {
			order = append(order, s)
		}
	}
	pf.SectionOrder = order

	enabled := make([]string, 0, len(pf.EnabledSections))
	seenEnabled := make(map[string]bool, len(pf.EnabledSections))
	for _, s := range pf.EnabledSections {
		if known[s] && !seenEnabled[s] {
			seenEnabled[s] = true
			enabled = append(enabled, s)
		}
	}
	pf.EnabledSections = enabled
}
