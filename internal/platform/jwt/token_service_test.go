package jwtmw

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock はテスト用に時刻を進められる時計です。
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := NewService("test-secret", "HS256", 30*time.Minute, opts...)
	require.NoError(t, err)
	return svc
}

// TestNewService は各種アルゴリズム・シークレットでServiceが正しく生成されることを検証します。
func TestNewService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		secret    string
		algorithm string
		wantErr   bool
	}{
		{"HS256", "secret", "HS256", false},
		{"HS384", "secret", "HS384", false},
		{"HS512", "secret", "HS512", false},
		{"RS256 rejected", "secret", "RS256", true},
		{"none rejected", "secret", "none", true},
		{"unknown rejected", "secret", "XX999", true},
		{"empty secret rejected", "", "HS256", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := NewService(tt.secret, tt.algorithm, time.Minute)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.algorithm, svc.method.Alg())
		})
	}
}

// TestService_IssueVerify は発行直後のトークンが検証に成功し、subjectが返ることを検証します。
func TestService_IssueVerify(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	for _, subject := range []string{"user@example.com", "user+tag@example.com"} {
		token, err := svc.Issue(subject, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(token, "."), "compact JWS has three segments")

		got, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, subject, got)
	}
}

// TestService_Issue_Claims はsub・iat・expクレームが設定され、TTLがexpに反映されることを検証します。
func TestService_Issue_Claims(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}
	svc := newTestService(t, WithClock(clock.Now))

	tests := []struct {
		name        string
		ttl         time.Duration
		expectedExp time.Time
	}{
		{"explicit ttl", 2 * time.Hour, clock.t.Add(2 * time.Hour)},
		{"zero ttl uses default", 0, clock.t.Add(30 * time.Minute)},
		{"negative ttl uses default", -time.Minute, clock.t.Add(30 * time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := svc.Issue("user@example.com", tt.ttl)
			require.NoError(t, err)

			var claims jwt.RegisteredClaims
			_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
			require.NoError(t, err)

			assert.Equal(t, "user@example.com", claims.Subject)
			assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
			assert.Equal(t, tt.expectedExp.Unix(), claims.ExpiresAt.Unix())
		})
	}
}

// TestService_Verify_Expiry は有効期限を過ぎたトークンが拒否されることを検証します。
func TestService_Verify_Expiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := newTestService(t, WithClock(clock.Now))

	token, err := svc.Issue("user@example.com", 10*time.Minute)
	require.NoError(t, err)

	clock.t = clock.t.Add(9 * time.Minute)
	_, err = svc.Verify(token)
	assert.NoError(t, err, "token is valid before expiry")

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "token is rejected after expiry")
}

// TestService_Verify_Invalid は署名不一致・不正形式・noneアルゴリズム等が一律ErrInvalidTokenになることを検証します。
func TestService_Verify_Invalid(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	other, err := NewService("other-secret", "HS256", time.Minute)
	require.NoError(t, err)
	hs512, err := NewService("test-secret", "HS512", time.Minute)
	require.NoError(t, err)

	wrongSecret, _ := other.Issue("user@example.com", time.Minute)
	wrongAlg, _ := hs512.Issue("user@example.com", time.Minute)
	noSubject, _ := svc.Issue("", time.Minute)

	unsigned, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user@example.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user@example.com",
	}).SignedString([]byte("test-secret"))

	valid, _ := svc.Issue("user@example.com", time.Minute)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Split(wrongSecret, ".")[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"random string", "randomstring"},
		{"malformed", "not.a.valid.token"},
		{"wrong secret", wrongSecret},
		{"different hmac algorithm", wrongAlg},
		{"none algorithm", unsigned},
		{"missing exp", noExp},
		{"missing subject", noSubject},
		{"tampered signature", tampered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			subject, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Empty(t, subject)
		})
	}
}
