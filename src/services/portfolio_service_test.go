package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

func seededPortfolio(t *testing.T, repo *memPortfolioRepo, owner primitive.ObjectID) *models.Portfolio {
	t.Helper()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p := models.DefaultPortfolio(owner)
	p.PersonalInfo = &models.PersonalInfo{Name: "Grace", Title: "Engineer"}
	p.Education = []models.Education{
		{Id: primitive.NewObjectID(), School: "MIT", Degree: "BSc", StartDate: &start},
	}
	p.Experience = []models.Experience{
		{Id: primitive.NewObjectID(), Title: "Dev", Company: "Acme", StartDate: &start},
	}
	p.Projects = []models.Project{
		{Id: primitive.NewObjectID(), Title: "Compiler", Featured: true},
	}
	p.Skills = []models.Skill{
		{Id: primitive.NewObjectID(), Name: "COBOL", Category: "Technical", Level: 90},
		{Id: primitive.NewObjectID(), Name: "Fortran", Category: "Technical", Level: 80},
		{Id: primitive.NewObjectID(), Name: "Linking", Category: "Tools", Level: 70},
	}
	require.NoError(t, repo.Insert(context.Background(), p))
	return p
}

func TestPortfolioService_Create(t *testing.T) {
	t.Parallel()

	t.Run("merges payload over default skeleton", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()

		created, err := svc.Create(context.Background(), owner, &models.PortfolioPatch{
			PersonalInfo: &models.PersonalInfo{Name: "Ada"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Ada", created.PersonalInfo.Name)
		assert.Equal(t, []models.Education{}, created.Education)
		assert.Equal(t, []models.Experience{}, created.Experience)
		assert.Equal(t, []models.Project{}, created.Projects)
		assert.Equal(t, []models.Skill{}, created.Skills)
		assert.Equal(t, models.SectionUniverse, created.SectionOrder)
		assert.Equal(t, models.SectionUniverse, created.EnabledSections)
	})

	t.Run("nil payload yields pure default skeleton", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)

		created, err := svc.Create(context.Background(), primitive.NewObjectID(), nil)
		require.NoError(t, err)
		assert.Equal(t, *models.DefaultPersonalInfo(), *created.PersonalInfo)
	})

	t.Run("second create conflicts and never writes", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()

		_, err := svc.Create(context.Background(), owner, nil)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), owner, &models.PortfolioPatch{})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeConflict))
		assert.Equal(t, 1, repo.inserts, "conflicting create must not insert a second record")
		assert.Len(t, repo.byOwner, 1)
	})

	t.Run("assigns durable ids to submitted child entries", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)

		created, err := svc.Create(context.Background(), primitive.NewObjectID(), &models.PortfolioPatch{
			Skills: &[]models.Skill{{Name: "Go", Category: "Technical", Level: 80}},
		})
		require.NoError(t, err)
		require.Len(t, created.Skills, 1)
		assert.False(t, created.Skills[0].Id.IsZero())
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)

		_, err := svc.Create(context.Background(), primitive.NewObjectID(), &models.PortfolioPatch{
			Skills: &[]models.Skill{{Name: "Go", Level: 101}},
		})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeValidation))
		assert.Zero(t, repo.inserts)
	})
}

func TestPortfolioService_Get(t *testing.T) {
	t.Parallel()

	t.Run("missing portfolio is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewPortfolioService(newMemPortfolioRepo())

		_, err := svc.Get(context.Background(), primitive.NewObjectID())
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("synthesizes default personal info without writing", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()

		legacy := models.DefaultPortfolio(owner)
		legacy.PersonalInfo = nil
		require.NoError(t, repo.Insert(context.Background(), legacy))

		first, err := svc.Get(context.Background(), owner)
		require.NoError(t, err)
		require.NotNil(t, first.PersonalInfo)
		assert.Equal(t, *models.DefaultPersonalInfo(), *first.PersonalInfo)

		// Repeating the read returns the same default each time and the
		// stored record stays untouched.
		second, err := svc.Get(context.Background(), owner)
		require.NoError(t, err)
		assert.Equal(t, first.PersonalInfo, second.PersonalInfo)
		assert.Zero(t, repo.replaces, "read must not mutate the stored record")
		assert.Nil(t, repo.byOwner[owner].PersonalInfo)
	})
}

func TestPortfolioService_Update(t *testing.T) {
	t.Parallel()

	t.Run("replaces only the patched top-level keys", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		before := seededPortfolio(t, repo, owner)

		updated, err := svc.Update(context.Background(), owner, &models.PortfolioPatch{
			Skills: &[]models.Skill{{Name: "Go", Category: "Technical", Level: 80}},
		})
		require.NoError(t, err)

		require.Len(t, updated.Skills, 1)
		assert.Equal(t, "Go", updated.Skills[0].Name)
		assert.Equal(t, before.Education, updated.Education)
		assert.Equal(t, before.Experience, updated.Experience)
		assert.Equal(t, before.Projects, updated.Projects)
		assert.Equal(t, before.PersonalInfo, updated.PersonalInfo)
		assert.Equal(t, before.SectionOrder, updated.SectionOrder)
	})

	t.Run("empty patch leaves the record unchanged", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		before := seededPortfolio(t, repo, owner)

		updated, err := svc.Update(context.Background(), owner, &models.PortfolioPatch{})
		require.NoError(t, err)
		assert.Equal(t, before.Skills, updated.Skills)
		assert.Equal(t, before.Education, updated.Education)
		assert.Equal(t, before.PersonalInfo, updated.PersonalInfo)
	})

	t.Run("missing portfolio is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewPortfolioService(newMemPortfolioRepo())

		_, err := svc.Update(context.Background(), primitive.NewObjectID(), &models.PortfolioPatch{})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("normalizes section lists on write", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		seededPortfolio(t, repo, owner)

		updated, err := svc.Update(context.Background(), owner, &models.PortfolioPatch{
			SectionOrder:    &[]string{"skills", "about", "bogus", "skills"},
			EnabledSections: &[]string{"skills", "bogus", "skills", "contact"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"skills", "about", "experience", "projects", "education", "contact"}, updated.SectionOrder)
		assert.Equal(t, []string{"skills", "contact"}, updated.EnabledSections)
	})

	t.Run("validation failure is distinct from not found", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		seededPortfolio(t, repo, owner)

		_, err := svc.Update(context.Background(), owner, &models.PortfolioPatch{
			Education: &[]models.Education{{Degree: "BSc"}},
		})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeValidation))
		assert.Zero(t, repo.replaces)
	})
}

func TestPortfolioService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes the record", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		seededPortfolio(t, repo, owner)

		require.NoError(t, svc.Delete(context.Background(), owner))
		assert.Empty(t, repo.byOwner)
	})

	t.Run("missing portfolio is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewPortfolioService(newMemPortfolioRepo())

		err := svc.Delete(context.Background(), primitive.NewObjectID())
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestPortfolioService_AddChildEntries(t *testing.T) {
	t.Parallel()

	t.Run("append skill assigns id and default category", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		seededPortfolio(t, repo, owner)

		skills, err := svc.AddSkill(context.Background(), owner, models.Skill{Name: "Go", Level: 80})
		require.NoError(t, err)
		require.Len(t, skills, 4)
		added := skills[3]
		assert.Equal(t, "Go", added.Name)
		assert.Equal(t, "Technical", added.Category)
		assert.False(t, added.Id.IsZero())
	})

	t.Run("append experience keeps earlier entries", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		before := seededPortfolio(t, repo, owner)

		list, err := svc.AddExperience(context.Background(), owner, models.Experience{
			Title: "CTO", Company: "Acme",
		})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, before.Experience[0], list[0])
	})

	t.Run("append to missing portfolio is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewPortfolioService(newMemPortfolioRepo())

		_, err := svc.AddEducation(context.Background(), primitive.NewObjectID(), models.Education{
			School: "MIT", Degree: "BSc",
		})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})

	t.Run("append validates the entry", func(t *testing.T) {
		t.Parallel()
		repo := newMemPortfolioRepo()
		svc := NewPortfolioService(repo)
		owner := primitive.NewObjectID()
		seededPortfolio(t, repo, owner)

		_, err := svc.AddProject(context.Background(), owner, models.Project{Description: "no title"})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})
}
