package auth

import (
	"context"
	"testing"
	"time"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := TokenManager{secretKey: []byte("testsecret")}
	session := model.Session{
		UserID:          "u-42",
		Username:        "packer",
		Role:            "operator",
		AllowedStatuses: []string{"ON_SHIPMENT", "ON_PACKAGING"},
		AllowedStores:   []string{"Main"},
	}

	token, err := tm.GenerateToken(session)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-42", got.UserID)
	require.Equal(t, "packer", got.Username)
	require.Equal(t, "operator", got.Role)
	require.Equal(t, []string{"ON_SHIPMENT", "ON_PACKAGING"}, got.AllowedStatuses)
	require.Equal(t, []string{"Main"}, got.AllowedStores)
	require.Empty(t, got.AllowedCities)
}

func TestParseInvalidToken(t *testing.T) {
	tm := TokenManager{secretKey: []byte("testsecret")}

	_, err := tm.ParseToken("invalid.token.string")
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestParseTokenWithWrongSignature(t *testing.T) {
	tm := TokenManager{secretKey: []byte("testsecret")}

	claims := jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	badTokenStr, _ := token.SignedString([]byte("wrongsecret"))

	_, err := tm.ParseToken(badTokenStr)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	tm := TokenManager{secretKey: []byte("testsecret")}

	claims := jwt.MapClaims{
		"user_id": "u-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredTokenStr, _ := token.SignedString([]byte("testsecret"))

	_, err := tm.ParseToken(expiredTokenStr)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestParseTokenWithoutUser(t *testing.T) {
	tm := TokenManager{secretKey: []byte("testsecret")}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "ghost",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, _ := token.SignedString([]byte("testsecret"))

	_, err := tm.ParseToken(tokenStr)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	require.False(t, ok)
	require.Empty(t, TokenFromContext(context.Background()))

	ctx := WithSession(context.Background(), model.Session{UserID: "u-7"}, "raw")
	session, ok := SessionFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "u-7", session.UserID)
	require.Equal(t, "raw", TokenFromContext(ctx))
}
