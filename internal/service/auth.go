// Package service provides business logic for users, portfolios, holdings,
// and transaction history, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finflow/finflow/internal/models"
	"github.com/finflow/finflow/internal/security"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// CreateUser inserts a new user and fills in the generated UID.
	// Returns models.ErrDuplicate when the email is already taken.
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail fetches a user by email, models.ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID fetches a user by UID, models.ErrNotFound if absent.
	GetUserByID(ctx context.Context, uid int64) (*models.User, error)
	// UpdateUser persists the mutable fields of the user.
	UpdateUser(ctx context.Context, user *models.User) error
	// DeleteUser removes a user, models.ErrNotFound if absent.
	DeleteUser(ctx context.Context, uid int64) error
}

// AuthService implements registration, login, and account management.
type AuthService struct {
	repo   UserRepository
	issuer *security.TokenIssuer
}

// NewAuthService constructs an AuthService from a user repository and a
// token issuer.
func NewAuthService(repo UserRepository, issuer *security.TokenIssuer) *AuthService {
	return &AuthService{repo: repo, issuer: issuer}
}

// Register creates a new user with a freshly hashed password and returns it.
// Returns models.ErrDuplicate when the email is already registered; the
// database unique key decides races between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, name, email, password, investmentProfile string) (*models.User, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:              name,
		Email:             email,
		PasswordHash:      hash,
		InvestmentProfile: investmentProfile,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller: both return
// models.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.ErrInvalidCredentials
		}
		return "", err
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", models.ErrInvalidCredentials
	}

	token, err := s.issuer.Create(user.UID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate resolves an access token to the user it was issued for.
// Returns models.ErrInvalidToken when the token is bad or the user no
// longer exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	uid, err := s.issuer.Decode(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies the non-nil fields to the user with the given UID.
// A new password is hashed before it is stored.
func (s *AuthService) UpdateUser(ctx context.Context, uid int64, name, password, investmentProfile *string) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hash, err := security.HashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if investmentProfile != nil {
		user.InvestmentProfile = *investmentProfile
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user with the given UID.
func (s *AuthService) DeleteUser(ctx context.Context, uid int64) error {
	return s.repo.DeleteUser(ctx, uid)
}
