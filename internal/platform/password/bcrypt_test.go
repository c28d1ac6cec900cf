package password

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_Cost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	passwords := []string{"password123", "correct horse battery staple", "пароль-ユニコード", " "}

	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			t.Parallel()

			hash, err := h.Hash(p)
			require.NoError(t, err)
			assert.NotEqual(t, p, hash, "hash must not equal the raw password")

			assert.NoError(t, h.Verify(hash, p))
			assert.ErrorIs(t, h.Verify(hash, p+"x"), ErrMismatch)
		})
	}
}

func TestHasher_Hash_IsSalted(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	a, err := h.Hash("same-input")
	require.NoError(t, err)
	b, err := h.Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_Verify_MalformedHash(t *testing.T) {
	t.Parallel()

	err := NewHasher(bcrypt.MinCost).Verify("not-a-bcrypt-hash", "password123")

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMismatch), "malformed hash must not look like a wrong password")
}
