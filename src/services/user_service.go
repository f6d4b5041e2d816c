package services

import (
	"context"
	"net/mail"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/instantfolio/Backend-Instant-Portfolio/src/models"
	"github.com/instantfolio/Backend-Instant-Portfolio/src/repository"
)

const bcryptCost = 11

// UserService handles registration, login and account lifecycle.
type UserService struct {
	users      repository.UserRepository
	portfolios repository.PortfolioRepository
}

func NewUserService(users repository.UserRepository, portfolios repository.PortfolioRepository) *UserService {
	return &UserService{users: users, portfolios: portfolios}
}

// Register creates a new account and returns the stored user.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, models.NewValidationError("Name, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.NewValidationError("Invalid email format")
	}
	if len(password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, models.NewConflictError("Email already registered")
	} else if !models.IsCode(err, models.CodeNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Template: "default",
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by email and password and returns the user.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, models.NewValidationError("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid password")
	}
	return user, nil
}

// GetProfile returns the user without the password hash.
func (s *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile applies a partial update to the account settings.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, patch *models.UserPatch) (*models.User, error) {
	if patch == nil {
		return nil, models.NewValidationError("Request body is required")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(user)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

// DeleteAccount removes the user and cascade-deletes the owned portfolio.
// An orphaned portfolio would be unreachable (all routes are owner-keyed) and
// its unique owner index would block a future re-registration flow.
func (s *UserService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.portfolios.DeleteByOwner(ctx, id); err != nil && !models.IsCode(err, models.CodeNotFound) {
		return err
	}

	return s.users.Delete(ctx, id)
}
