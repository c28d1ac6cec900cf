package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalog_backend/internal/feature/auth/domain/entity"
	"catalog_backend/internal/platform/password"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// maxPasswordBytes はbcryptが扱えるパスワードの最大バイト数です。
	maxPasswordBytes = 72

	// dummyHash は存在しないユーザーでもbcrypt比較を実行するためのハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository は認証情報の永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。メールアドレスが使用済みならErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は該当ユーザーがいなければErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は該当ユーザーがいなければErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と照合を行います。
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Verify はパスワードが一致しなければpassword.ErrMismatchを返します。
	Verify(hash, password string) error
}

// TokenIssuer はsubjectに対するBearerトークンを発行します。
type TokenIssuer interface {
	Issue(subject string, ttl time.Duration) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	ttl    time.Duration
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。ttlは発行するアクセストークンの有効期間です。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, ttl time.Duration) *authUsecase {
	return &authUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		ttl:    ttl,
	}
}

// Signup はパスワードをハッシュ化して新しいユーザーを登録します。
// 登録済みのメールアドレスはErrEmailAlreadyExistsとなり、既存レコードは変更されません。
func (u *authUsecase) Signup(ctx context.Context, email, pw string) (*entity.User, error) {
	if len(pw) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	if len(pw) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashed, err := u.hasher.Hash(pw)
	if err != nil {
		return nil, err
	}
	user := &entity.User{Email: email, PasswordHash: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Signin はユーザーを認証し、署名済みのアクセストークンを返します。
// 未登録のメールアドレスでもbcrypt比較を実行するため、どちらの失敗も同じ時間がかかり
// 同じErrInvalidCredentialsを返します。
func (u *authUsecase) Signin(ctx context.Context, email, pw string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	verifyErr := u.hasher.Verify(hash, pw)
	if verifyErr != nil && !errors.Is(verifyErr, password.ErrMismatch) {
		// 保存済みハッシュが壊れている場合は設定・データの問題として扱う
		slog.Error("stored password hash is malformed", "error", verifyErr, "email", email)
		return "", verifyErr
	}
	if user == nil || verifyErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.Email, u.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ResolvePrincipal はトークンのsubjectが指すユーザーのIDを返します。
func (u *authUsecase) ResolvePrincipal(ctx context.Context, subject string) (uint, error) {
	user, err := u.users.FindByEmail(ctx, subject)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Me はアクセスガードを通過したユーザーを返します。
func (u *authUsecase) Me(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}
