package auth

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"assetdb/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestGenerateVerifyRoundTrip(t *testing.T) {
	tk := NewTokens(secret, time.Hour)
	raw, err := tk.Generate(7, "admin")
	require.NoError(t, err)

	c, err := tk.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.UserID)
	assert.Equal(t, "admin", c.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), c.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyRejects(t *testing.T) {
	tk := NewTokens(secret, time.Hour)
	raw, err := tk.Generate(1, "a")
	require.NoError(t, err)

	_, err = NewTokens("another-secret-another-secret-xx", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tk.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokens(secret, time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Generate(1, "a")
	require.NoError(t, err)
	_, err = tk.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tk.Verify(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", h)
	assert.True(t, CheckPassword(h, "s3cret"))
	assert.False(t, CheckPassword(h, "wrong"))

	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)

	_, err = HashPassword(strings.Repeat("x", MaxPasswordBytes))
	require.NoError(t, err)
	_, err = HashPassword(strings.Repeat("x", MaxPasswordBytes+8))
	assert.EqualError(t, err, "Password must not exceed 72 bytes")
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}
