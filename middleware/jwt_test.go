package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, key []byte, username string) string {
	t.Helper()
	claims := &Claims{
		Username: username,
		UserHash: UserHashFromUsername(username, key),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func runJWT(key []byte, authHeader string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWT(key)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("username").(string))
	})
	return rec, handler(c)
}

func TestJWTValidToken(t *testing.T) {
	key := []byte("test-secret")
	rec, err := runJWT(key, signedToken(t, key, "promotor"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "promotor", rec.Body.String())
}

func TestJWTBearerPrefix(t *testing.T) {
	key := []byte("test-secret")
	rec, err := runJWT(key, "Bearer "+signedToken(t, key, "promotor"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "promotor", rec.Body.String())
}

func TestJWTMissingHeader(t *testing.T) {
	_, err := runJWT([]byte("test-secret"), "")
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestJWTWrongKey(t *testing.T) {
	token := signedToken(t, []byte("other-secret"), "promotor")
	_, err := runJWT([]byte("test-secret"), token)
	require.Error(t, err)
}

func TestUserHashFromUsernameNormalizes(t *testing.T) {
	key := []byte("k")
	assert.Equal(t, UserHashFromUsername("Admin", key), UserHashFromUsername("  admin ", key))
	assert.NotEqual(t, UserHashFromUsername("admin", key), UserHashFromUsername("other", key))
}
