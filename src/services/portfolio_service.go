// Package services holds the business rules between the HTTP controllers and
// the repositories.
package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/repository"
)

// PortfolioService enforces the one-portfolio-per-owner rule and provides
// CRUD with default-value population and shallow top-level merge updates.
type PortfolioService struct {
	portfolios repository.PortfolioRepository
}

func NewPortfolioService(portfolios repository.PortfolioRepository) *PortfolioService {
	return &PortfolioService{portfolios: portfolios}
}

// Create builds a new portfolio for the owner by merging the payload over the
// default skeleton. Fails with a conflict if the owner already has one.
func (s *PortfolioService) Create(ctx context.Context, owner primitive.ObjectID, patch *models.PortfolioPatch) (*models.Portfolio, error) {
	if _, err := s.portfolios.FindByOwner(ctx, owner); err == nil {
		return nil, models.NewConflictError("Portfolio already exists")
	} else if !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}

	portfolio := models.DefaultPortfolio(owner)
	if patch != nil {
		if err := validatePatch(patch); err != nil {
			return nil, err
		}
		patch.Apply(portfolio)
	}
	portfolio.NormalizeSections()
	assignEntryIDs(portfolio)

	if err := s.portfolios.Insert(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// Get returns the owner's portfolio. A record whose personalInfo block was
// never set is returned with the default skeleton synthesized in; the record
// itself is not rewritten.
func (s *PortfolioService) Get(ctx context.Context, owner primitive.ObjectID) (*models.Portfolio, error) {
	portfolio, err := s.portfolios.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if portfolio.PersonalInfo == nil {
		portfolio.PersonalInfo = models.DefaultPersonalInfo()
	}
	return portfolio, nil
}

// Update applies the patch as a shallow top-level merge: present keys fully
// replace the stored field (arrays wholesale), absent keys are untouched.
func (s *PortfolioService) Update(ctx context.Context, owner primitive.ObjectID, patch *models.PortfolioPatch) (*models.Portfolio, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	patch.Apply(portfolio)
	portfolio.NormalizeSections()
	assignEntryIDs(portfolio)

	if err := s.portfolios.ReplaceByOwner(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio, nil
}

// Delete removes the owner's portfolio. Uploaded images are external and are
// not cleaned up here.
func (s *PortfolioService) Delete(ctx context.Context, owner primitive.ObjectID) error {
	return s.portfolios.DeleteByOwner(ctx, owner)
}

// AddEducation appends one entry to the education list and returns the
// updated list.
func (s *PortfolioService) AddEducation(ctx context.Context, owner primitive.ObjectID, entry models.Education) ([]models.Education, error) {
	if err := validateEducation(entry); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	entry.Id = primitive.NewObjectID()
	portfolio.Education = append(portfolio.Education, entry)

	if err := s.portfolios.ReplaceByOwner(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio.Education, nil
}

// AddExperience appends one entry to the experience list and returns the
// updated list.
func (s *PortfolioService) AddExperience(ctx context.Context, owner primitive.ObjectID, entry models.Experience) ([]models.Experience, error) {
	if err := validateExperience(entry); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	entry.Id = primitive.NewObjectID()
	portfolio.Experience = append(portfolio.Experience, entry)

	if err := s.portfolios.ReplaceByOwner(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio.Experience, nil
}

// AddProject appends one entry to the projects list and returns the updated
// list.
func (s *PortfolioService) AddProject(ctx context.Context, owner primitive.ObjectID, entry models.Project) ([]models.Project, error) {
	if err := validateProject(entry); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	entry.Id = primitive.NewObjectID()
	portfolio.Projects = append(portfolio.Projects, entry)

	if err := s.portfolios.ReplaceByOwner(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio.Projects, nil
}

// AddSkill appends one entry to the skills list and returns the updated list.
func (s *PortfolioService) AddSkill(ctx context.Context, owner primitive.ObjectID, entry models.Skill) ([]models.Skill, error) {
	normalizeSkill(&entry)
	if err := validateSkill(entry); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolios.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	entry.Id = primitive.NewObjectID()
	portfolio.Skills = append(portfolio.Skills, entry)

	if err := s.portfolios.ReplaceByOwner(ctx, portfolio); err != nil {
		return nil, err
	}
	return portfolio.Skills, nil
}

// assignEntryIDs gives a durable identifier to every child entry that does
// not have one yet. Client-local identifiers never reach this point; they are
// stripped during the wire transform.
func assignEntryIDs(p *models.Portfolio) {
	for i := range p.Education {
		if p.Education[i].Id.IsZero() {
			p.Education[i].Id = primitive.NewObjectID()
		}
	}
	for i := range p.Experience {
		if p.Experience[i].Id.IsZero() {
			p.Experience[i].Id = primitive.NewObjectID()
		}
	}
	for i := range p.Projects {
		if p.Projects[i].Id.IsZero() {
			p.Projects[i].Id = primitive.NewObjectID()
		}
	}
	for i := range p.Skills {
		if p.Skills[i].Id.IsZero() {
			p.Skills[i].Id = primitive.NewObjectID()
		}
	}
}

func normalizeSkill(s *models.Skill) {
	if s.Category == "" {
		s.Category = "Technical"
	}
}

func validatePatch(patch *models.PortfolioPatch) error {
	if patch == nil {
		return models.NewValidationError("Request body is required")
	}
	if patch.Education != nil {
		for _, e := range *patch.Education {
			if err := validateEducation(e); err != nil {
				return err
			}
		}
	}
	if patch.Experience != nil {
		for _, e := range *patch.Experience {
			if err := validateExperience(e); err != nil {
				return err
			}
		}
	}
	if patch.Projects != nil {
		for _, p := range *patch.Projects {
			if err := validateProject(p); err != nil {
				return err
			}
		}
	}
	if patch.Skills != nil {
		for i := range *patch.Skills {
			normalizeSkill(&(*patch.Skills)[i])
			if err := validateSkill((*patch.Skills)[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEducation(e models.Education) error {
	if e.School == "" {
		return models.NewValidationError("Education entry requires a school")
	}
	if e.Degree == "" {
		return models.NewValidationError("Education entry requires a degree")
	}
	return nil
}

func validateExperience(e models.Experience) error {
	if e.Title == "" {
		return models.NewValidationError("Experience entry requires a title")
	}
	if e.Company == "" {
		return models.NewValidationError("Experience entry requires a company")
	}
	return nil
}

func validateProject(p models.Project) error {
	if p.Title == "" {
		return models.NewValidationError("Project entry requires a title")
	}
	return nil
}

func validateSkill(s models.Skill) error {
	if s.Name == "" {
		return models.NewValidationError("Skill entry requires a name")
	}
	if s.Level < 0 || s.Level > 100 {
		return models.NewValidationError("Skill level must be between 0 and 100")
	}
	return nil
}
