package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

// In-memory repository fakes shared by the service tests in this package.

type memPortfolioRepo struct {
	byOwner  map[primitive.ObjectID]*models.Portfolio
	inserts  int
	replaces int
}

func newMemPortfolioRepo() *memPortfolioRepo {
	return &memPortfolioRepo{byOwner: make(map[primitive.ObjectID]*models.Portfolio)}
}

func clonePortfolio(p *models.Portfolio) *models.Portfolio {
	cp := *p
	if p.PersonalInfo != nil {
		info := *p.PersonalInfo
		cp.PersonalInfo = &info
	}
	cp.Education = append([]models.Education{}, p.Education...)
	cp.Experience = append([]models.Experience{}, p.Experience...)
	cp.Projects = append([]models.Project{}, p.Projects...)
	cp.Skills = append([]models.Skill{}, p.Skills...)
	cp.SectionOrder = append([]string{}, p.SectionOrder...)
	cp.EnabledSections = append([]string{}, p.EnabledSections...)
	return &cp
}

func (r *memPortfolioRepo) FindByOwner(_ context.Context, owner primitive.ObjectID) (*models.Portfolio, error) {
	p, ok := r.byOwner[owner]
	if !ok {
		return nil, models.NewNotFoundError("Portfolio")
	}
	return clonePortfolio(p), nil
}

func (r *memPortfolioRepo) Insert(_ context.Context, portfolio *models.Portfolio) error {
	if _, ok := r.byOwner[portfolio.User]; ok {
		return models.NewConflictError("Portfolio already exists")
	}
	if portfolio.Id.IsZero() {
		portfolio.Id = primitive.NewObjectID()
	}
	r.inserts++
	r.byOwner[portfolio.User] = clonePortfolio(portfolio)
	return nil
}

func (r *memPortfolioRepo) ReplaceByOwner(_ context.Context, portfolio *models.Portfolio) error {
	if _, ok := r.byOwner[portfolio.User]; !ok {
		return models.NewNotFoundError("Portfolio")
	}
	r.replaces++
	r.byOwner[portfolio.User] = clonePortfolio(portfolio)
	return nil
}

func (r *memPortfolioRepo) DeleteByOwner(_ context.Context, owner primitive.ObjectID) error {
	if _, ok := r.byOwner[owner]; !ok {
		return models.NewNotFoundError("Portfolio")
	}
	delete(r.byOwner, owner)
	return nil
}

type memUserRepo struct {
	byID map[primitive.ObjectID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[primitive.ObjectID]*models.User)}
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("User")
}

func (r *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, models.NewNotFoundError("User")
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Insert(_ context.Context, user *models.User) error {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return models.NewConflictError("Email already registered")
		}
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	cp := *user
	r.byID[user.Id] = &cp
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.byID[user.Id]; !ok {
		return models.NewNotFoundError("User")
	}
	cp := *user
	r.byID[user.Id] = &cp
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.byID[id]; !ok {
		return models.NewNotFoundError("User")
	}
	delete(r.byID, id)
	return nil
}
