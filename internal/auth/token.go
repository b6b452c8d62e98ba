package auth

import (
	"context"
	"time"

	"github.com/and161185/kaspi-console/internal/errs"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager verifies the access tokens issued by the order backend. Both
// sides share the HS256 secret.
type TokenManager struct {
	secretKey []byte
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{[]byte(secretKey)}
}

func (tm *TokenManager) GenerateToken(session model.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":         session.UserID,
		"username":        session.Username,
		"role":            session.Role,
		"allowedStatuses": session.AllowedStatuses,
		"allowedStores":   session.AllowedStores,
		"allowedCities":   session.AllowedCities,
		"exp":             time.Now().Add(24 * time.Hour).Unix(),
		"iat":             time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

func (tm *TokenManager) ParseToken(tokenStr string) (model.Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrInvalidToken
		}
		return tm.secretKey, nil
	})

	if err != nil || !token.Valid {
		return model.Session{}, errs.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Session{}, errs.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return model.Session{}, errs.ErrInvalidToken
	}

	return model.Session{
		UserID:          userID,
		Username:        stringClaim(claims, "username"),
		Role:            stringClaim(claims, "role"),
		AllowedStatuses: listClaim(claims, "allowedStatuses"),
		AllowedStores:   listClaim(claims, "allowedStores"),
		AllowedCities:   listClaim(claims, "allowedCities"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

// listClaim tolerates a missing claim and skips non-string items.
func listClaim(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

type contextKey string

const (
	sessionKey contextKey = "session"
	tokenKey   contextKey = "token"
)

// WithSession stores the caller's session and raw bearer token in ctx.
func WithSession(ctx context.Context, session model.Session, token string) context.Context {
	ctx = context.WithValue(ctx, sessionKey, session)
	return context.WithValue(ctx, tokenKey, token)
}

func SessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(model.Session)
	return session, ok
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
