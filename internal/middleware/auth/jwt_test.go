package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

const testSecret = "test-secret"

func createJWT(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenString
}

func createValidJWT(t *testing.T, userID, email, role string) string {
	return createJWT(t, testSecret, jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
}

func newMiddleware() echo.MiddlewareFunc {
	return JWTMiddleware(JWTConfig{
		Secret:    testSecret,
		Logger:    zap.NewNop(),
		SkipPaths: []string{"/health"},
	})
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func TestJWTMiddleware_SuccessfulAuthentication(t *testing.T) {
	userID := "550e8400-e29b-41d4-a716-446655440000"
	e := echo.New()

	handler := newMiddleware()(func(c echo.Context) error {
		user, err := GetUserFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "authenticated", user.Role)

		id, err := UserID(c)
		assert.NoError(t, err)
		assert.Equal(t, userID, id)
		return okHandler(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quizzes", nil)
	req.Header.Set("Authorization", "Bearer "+createValidJWT(t, userID, "test@example.com", "authenticated"))
	rec := httptest.NewRecorder()

	err := handler(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing authorization header", header: ""},
		{name: "missing bearer prefix", header: createValidJWT(t, "user-1", "", "")},
		{name: "wrong secret", header: "Bearer " + createJWT(t, "other-secret", jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{name: "expired token", header: "Bearer " + createJWT(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{name: "no expiry", header: "Bearer " + createJWT(t, testSecret, jwt.MapClaims{
			"sub": "user-1",
		})},
		{name: "no subject", header: "Bearer " + createJWT(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})},
		{name: "malformed token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/quizzes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			err := newMiddleware()(okHandler)(e.NewContext(req, rec))

			assert.NoError(t, err) // Middleware handles the error response
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body apperrors.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, apperrors.ErrUnauthenticated, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestJWTMiddleware_SkipPaths(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	err := newMiddleware()(okHandler)(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserID_WithoutAuthentication(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quizzes", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, err := UserID(c)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUnauthenticated, apperrors.CodeOf(err))
}
