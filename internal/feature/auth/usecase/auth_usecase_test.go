package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/platform/password"
	"catalog_backend/internal/shared/apperr"
)

// mockUserRepository is a mock implementation of UserRepository.
type mockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *entity.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// mockTokenIssuer records the subject it was asked to sign.
type mockTokenIssuer struct {
	IssueFunc func(subject string, ttl time.Duration) (string, error)
	subjects  []string
}

func (m *mockTokenIssuer) Issue(subject string, ttl time.Duration) (string, error) {
	m.subjects = append(m.subjects, subject)
	if m.IssueFunc != nil {
		return m.IssueFunc(subject, ttl)
	}
	return "mock-jwt-token", nil
}

// countingHasher wraps the real hasher and counts Verify calls.
type countingHasher struct {
	*password.Hasher
	verifies int
}

func (h *countingHasher) Verify(hash, pw string) error {
	h.verifies++
	return h.Hasher.Verify(hash, pw)
}

func newHasher() *countingHasher {
	return &countingHasher{Hasher: password.NewHasher(4)}
}

func TestAuthUsecase_Signup(t *testing.T) {
	t.Run("successful signup stores a hash, never the raw password", func(t *testing.T) {
		hasher := newHasher()
		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 1
				stored = user
				return nil
			},
		}

		uc := NewAuthUsecase(repo, hasher, &mockTokenIssuer{}, time.Minute)
		user, err := uc.Signup(context.Background(), "alice@x.io", "password123")

		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.Equal(t, "alice@x.io", user.Email)
		require.NotNil(t, stored)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.NoError(t, hasher.Verify(stored.PasswordHash, "password123"))
	})

	t.Run("short password is rejected before touching the store", func(t *testing.T) {
		called := false
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				called = true
				return nil
			},
		}

		uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)
		_, err := uc.Signup(context.Background(), "alice@x.io", "short")

		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.False(t, called)
	})

	t.Run("password over 72 bytes is a validation error", func(t *testing.T) {
		called := false
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				called = true
				return nil
			},
		}

		uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)
		_, err := uc.Signup(context.Background(), "alice@x.io", strings.Repeat("a", 73))

		assert.ErrorIs(t, err, ErrPasswordTooLong)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.False(t, called)
	})

	t.Run("password of exactly 72 bytes is accepted", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error { return nil },
		}

		uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)
		_, err := uc.Signup(context.Background(), "alice@x.io", strings.Repeat("a", 72))

		assert.NoError(t, err)
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}

		uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)
		_, err := uc.Signup(context.Background(), "alice@x.io", "password123")

		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("repository create failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error { return expectedErr },
		}

		uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)
		_, err := uc.Signup(context.Background(), "alice@x.io", "password123")

		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestAuthUsecase_Signin(t *testing.T) {
	hasher := newHasher()
	hashed, err := hasher.Hash("password123")
	require.NoError(t, err)
	alice := &entity.User{ID: 1, Email: "alice@x.io", PasswordHash: hashed}

	findAlice := func(ctx context.Context, email string) (*entity.User, error) {
		if email == alice.Email {
			return alice, nil
		}
		return nil, ErrUserNotFound
	}

	t.Run("successful signin issues token for the email", func(t *testing.T) {
		tokens := &mockTokenIssuer{}
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findAlice}, hasher, tokens, 30*time.Minute)

		token, err := uc.Signin(context.Background(), "alice@x.io", "password123")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, []string{"alice@x.io"}, tokens.subjects)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findAlice}, hasher, &mockTokenIssuer{}, time.Minute)

		_, wrongPw := uc.Signin(context.Background(), "alice@x.io", "wrong-password")
		_, unknown := uc.Signin(context.Background(), "nobody@x.io", "password123")

		assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, ErrInvalidCredentials)
		assert.Equal(t, wrongPw.Error(), unknown.Error())
	})

	t.Run("unknown email still runs a hash comparison", func(t *testing.T) {
		h := newHasher()
		uc := NewAuthUsecase(&mockUserRepository{}, h, &mockTokenIssuer{}, time.Minute)

		_, err := uc.Signin(context.Background(), "nobody@x.io", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, 1, h.verifies)
	})

	t.Run("malformed stored hash is unexpected, not unauthorized", func(t *testing.T) {
		broken := &entity.User{ID: 2, Email: "bob@x.io", PasswordHash: "not-a-hash"}
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return broken, nil },
		}
		uc := NewAuthUsecase(repo, hasher, &mockTokenIssuer{}, time.Minute)

		_, err := uc.Signin(context.Background(), "bob@x.io", "password123")

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		assert.True(t, apperr.IsUnexpected(err))
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		dbErr := errors.New("connection refused")
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return nil, dbErr },
		}
		uc := NewAuthUsecase(repo, hasher, &mockTokenIssuer{}, time.Minute)

		_, err := uc.Signin(context.Background(), "alice@x.io", "password123")

		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("token issuer failure", func(t *testing.T) {
		tokens := &mockTokenIssuer{
			IssueFunc: func(subject string, ttl time.Duration) (string, error) { return "", errors.New("sign failed") },
		}
		uc := NewAuthUsecase(&mockUserRepository{FindByEmailFunc: findAlice}, hasher, tokens, time.Minute)

		_, err := uc.Signin(context.Background(), "alice@x.io", "password123")

		assert.ErrorContains(t, err, "failed to generate token")
	})
}

func TestAuthUsecase_ResolvePrincipal(t *testing.T) {
	repo := &mockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "alice@x.io" {
				return &entity.User{ID: 3, Email: email}, nil
			}
			return nil, ErrUserNotFound
		},
	}
	uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)

	id, err := uc.ResolvePrincipal(context.Background(), "alice@x.io")
	require.NoError(t, err)
	assert.Equal(t, uint(3), id)

	_, err = uc.ResolvePrincipal(context.Background(), "ghost@x.io")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthUsecase_Me(t *testing.T) {
	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			return &entity.User{ID: id, Email: "alice@x.io"}, nil
		},
	}
	uc := NewAuthUsecase(repo, newHasher(), &mockTokenIssuer{}, time.Minute)

	user, err := uc.Me(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)
}
