package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/and161185/kaspi-console/internal/auth"
	"github.com/and161185/kaspi-console/internal/model"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	tm := auth.NewTokenManager("test-secret")
	validToken, err := tm.GenerateToken(model.Session{UserID: "u1", AllowedStatuses: []string{"ON_SHIPMENT"}})
	require.NoError(t, err)

	otherToken, err := auth.NewTokenManager("other-secret").GenerateToken(model.Session{UserID: "u1"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{name: "no header", authHeader: "", expectedStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", expectedStatus: http.StatusUnauthorized},
		{name: "invalid token", authHeader: "Bearer invalidtoken", expectedStatus: http.StatusUnauthorized},
		{name: "foreign signature", authHeader: "Bearer " + otherToken, expectedStatus: http.StatusUnauthorized},
		{name: "ok", authHeader: "Bearer " + validToken, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			handler := AuthMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				session, ok := auth.SessionFromContext(r.Context())
				require.True(t, ok)
				require.Equal(t, "u1", session.UserID)
				require.Equal(t, []string{"ON_SHIPMENT"}, session.AllowedStatuses)
				require.Equal(t, validToken, auth.TokenFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			}))

			handler.ServeHTTP(rr, req)
			require.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		session  *model.Session
		expected int
	}{
		{name: "anonymous", expected: http.StatusUnauthorized},
		{name: "operator", session: &model.Session{UserID: "u1", Role: "operator"}, expected: http.StatusForbidden},
		{name: "admin", session: &model.Session{UserID: "u2", Role: model.RoleAdmin}, expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.session != nil {
				req = req.WithContext(auth.WithSession(req.Context(), *tt.session, "tok"))
			}
			rr := httptest.NewRecorder()
			AdminOnly(ok).ServeHTTP(rr, req)
			require.Equal(t, tt.expected, rr.Code)
		})
	}
}
