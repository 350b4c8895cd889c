package test

import (
	"context"
	"errors"

	"github.com/wambui/florax/internal/domain/model"
	pkgAuth "github.com/wambui/florax/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// IdentityResolverStub implements the middleware identity contract.
type IdentityResolverStub struct {
	ID       int64
	User     *model.User
	ParseFn  func(string) (int64, error)
	UserFn   func(context.Context, int64) (*model.User, error)
	ParseErr error
	UserErr  error
}

// ParseToken delegates to the override or returns the predefined id.
func (s IdentityResolverStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.ParseErr != nil {
		return 0, s.ParseErr
	}
	if s.ID != 0 {
		return s.ID, nil
	}
	return 1, nil
}

// UserByID returns the configured account.
func (s IdentityResolverStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserFn != nil {
		return s.UserFn(ctx, id)
	}
	if s.UserErr != nil {
		return nil, s.UserErr
	}
	if s.User != nil {
		return s.User, nil
	}
	return &model.User{ID: id, Role: model.RoleBuyer}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
