package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("stores a hashed password and normalized email", func(t *testing.T) {
		t.Parallel()
		users := newMemUserRepo()
		svc := NewUserService(users, newMemPortfolioRepo())

		user, err := svc.Register(context.Background(), "Ada", "  Ada@Example.COM ", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "default", user.Template)
		assert.NotEqual(t, "hunter2hunter2", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2hunter2")))
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newMemUserRepo(), newMemPortfolioRepo())

		_, err := svc.Register(context.Background(), "Ada", "not-an-email", "hunter2hunter2")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("rejects short password", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newMemUserRepo(), newMemPortfolioRepo())

		_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "short")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		users := newMemUserRepo()
		svc := NewUserService(users, newMemPortfolioRepo())

		_, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "Imposter", "ADA@example.com", "hunter2hunter2")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeConflict))
	})
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T) (*UserService, *models.User) {
		t.Helper()
		svc := NewUserService(newMemUserRepo(), newMemPortfolioRepo())
		user, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)
		return svc, user
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		svc, registered := register(t)

		user, err := svc.Login(context.Background(), "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, registered.Id, user.Id)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		t.Parallel()
		svc, _ := register(t)

		_, err := svc.Login(context.Background(), "ada@example.com", "wrong-password")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeUnauthorized))
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		t.Parallel()
		svc, _ := register(t)

		_, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		t.Parallel()
		users := newMemUserRepo()
		svc := NewUserService(users, newMemPortfolioRepo())
		registered, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)

		template := "creative"
		updated, err := svc.UpdateProfile(context.Background(), registered.Id, &models.UserPatch{
			Template: &template,
		})
		require.NoError(t, err)
		assert.Equal(t, "creative", updated.Template)
		assert.Equal(t, "Ada", updated.Name)
		assert.Empty(t, updated.Password, "password hash must never be returned")
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newMemUserRepo(), newMemPortfolioRepo())

		name := "X"
		_, err := svc.UpdateProfile(context.Background(), primitive.NewObjectID(), &models.UserPatch{Name: &name})
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("cascade-deletes the owned portfolio", func(t *testing.T) {
		t.Parallel()
		users := newMemUserRepo()
		portfolios := newMemPortfolioRepo()
		svc := NewUserService(users, portfolios)
		registered, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)
		require.NoError(t, portfolios.Insert(context.Background(), models.DefaultPortfolio(registered.Id)))

		require.NoError(t, svc.DeleteAccount(context.Background(), registered.Id))
		assert.Empty(t, users.byID)
		assert.Empty(t, portfolios.byOwner)
	})

	t.Run("account without a portfolio still deletes", func(t *testing.T) {
		t.Parallel()
		users := newMemUserRepo()
		svc := NewUserService(users, newMemPortfolioRepo())
		registered, err := svc.Register(context.Background(), "Ada", "ada@example.com", "hunter2hunter2")
		require.NoError(t, err)

		require.NoError(t, svc.DeleteAccount(context.Background(), registered.Id))
		assert.Empty(t, users.byID)
	})

	t.Run("unknown account is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newMemUserRepo(), newMemPortfolioRepo())

		err := svc.DeleteAccount(context.Background(), primitive.NewObjectID())
		require.Error(t, err)
		assert.True(t, models.IsCode(err, models.CodeNotFound))
	})
}
