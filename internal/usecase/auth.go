package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/wambui/florax/internal/domain/errors"
	"github.com/wambui/florax/internal/domain/model"
	"github.com/wambui/florax/internal/domain/repository"
	pkgAuth "github.com/wambui/florax/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// RegisterInput carries signup data. Shop fields matter for florists only.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        string
	ShopName    string
	ShopAddress string
	ShopContact string
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it with a signed token.
func (u *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = NormalizeEmail(input.Email)

	switch {
	case input.Name == "":
		return nil, "", fmt.Errorf("name is required: %w", domainErrors.ErrValidation)
	case input.Email == "" || !strings.Contains(input.Email, "@"):
		return nil, "", fmt.Errorf("valid email is required: %w", domainErrors.ErrValidation)
	case input.Password == "":
		return nil, "", fmt.Errorf("password is required: %w", domainErrors.ErrValidation)
	case !model.ValidRole(input.Role):
		return nil, "", fmt.Errorf("role must be buyer or florist: %w", domainErrors.ErrValidation)
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         model.Role(input.Role),
		ShopName:     strings.TrimSpace(input.ShopName),
		ShopAddress:  strings.TrimSpace(input.ShopAddress),
		ShopContact:  strings.TrimSpace(input.ShopContact),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns the user with a token.
// Unknown email and wrong password are indistinguishable to the caller.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
