package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenGenerator(t *testing.T) {
	tg := NewTokenGenerator("test-secret-key", time.Hour)

	assert.NotNil(t, tg)
	assert.Equal(t, []byte("test-secret-key"), tg.secret)
	assert.Equal(t, time.Hour, tg.tokenExpiry)
}

func TestTokenGenerator_GenerateAndValidate(t *testing.T) {
	tg := NewTokenGenerator("b8a3c2267dc85f855dea9b46b452bf20", time.Hour)

	tests := []struct {
		name   string
		userID int
	}{
		{name: "standard user id", userID: 123},
		{name: "zero user id", userID: 0},
		{name: "large user id", userID: 2147483647},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tg.GenerateToken(tt.userID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			userID, err := tg.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, userID)
		})
	}
}

func TestTokenGenerator_Claims(t *testing.T) {
	issued := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	tg := NewTokenGenerator("secret", time.Hour)
	tg.now = func() time.Time { return issued }

	token, err := tg.GenerateToken(42)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenGenerator_Expiry(t *testing.T) {
	issued := time.Now()
	tg := NewTokenGenerator("secret", time.Hour)
	tg.now = func() time.Time { return issued }

	token, err := tg.GenerateToken(7)
	require.NoError(t, err)

	t.Run("accepted just before expiry", func(t *testing.T) {
		tg.now = func() time.Time { return issued.Add(59 * time.Minute) }
		userID, err := tg.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, userID)
	})

	t.Run("rejected after expiry", func(t *testing.T) {
		tg.now = func() time.Time { return issued.Add(61 * time.Minute) }
		_, err := tg.ValidateToken(token)
		assert.Error(t, err)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})
}

func TestTokenGenerator_ValidateToken_Invalid(t *testing.T) {
	tg := NewTokenGenerator("secret", time.Hour)
	other := NewTokenGenerator("other-secret", time.Hour)

	otherToken, err := other.GenerateToken(1)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	badSubjectToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: otherToken},
		{name: "none algorithm", token: noneToken},
		{name: "missing expiry", token: noExpToken},
		{name: "non numeric subject", token: badSubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tg.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}
