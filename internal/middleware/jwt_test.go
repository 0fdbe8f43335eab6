package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooking/internal/utils"
)

func runJWT(t *testing.T, secret, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, JWTAuth(secret)(next)(c))
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken("top-secret", 7, "CUSTOMER", 15)
	require.NoError(t, err)

	rec, c := runJWT(t, "top-secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	// Claims decoded from JSON arrive as float64.
	assert.EqualValues(t, 7, c.Get("user_id"))
	assert.Equal(t, "CUSTOMER", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runJWT(t, "top-secret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, "CUSTOMER", 15)
	require.NoError(t, err)

	rec, _ := runJWT(t, "top-secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken("top-secret", 7, "CUSTOMER", -1)
	require.NoError(t, err)

	rec, _ := runJWT(t, "top-secret", "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     any
		allowed  []string
		wantCode int
	}{
		{"allowed role", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"one of several", "CUSTOMER", []string{"ADMIN", "CUSTOMER"}, http.StatusOK},
		{"denied role", "CUSTOMER", []string{"ADMIN"}, http.StatusForbidden},
		{"missing role", nil, []string{"ADMIN"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}
			next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
			require.NoError(t, RequireRole(tt.allowed...)(next)(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
