package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r
}

func doAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := protectedRouter(testSecret)

	tok := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	rec := doAuth(r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":"u-1"`)
}

func TestJWTAuthFallsBackToSubject(t *testing.T) {
	r := protectedRouter(testSecret)

	tok := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u-2",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	rec := doAuth(r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"user_id":"u-2"`)
}

func TestJWTAuthRejects(t *testing.T) {
	r := protectedRouter(testSecret)

	expired := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u-1",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "u-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	noSubject := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	for name, header := range map[string]string{
		"no header":      "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not.a.jwt",
		"expired":        "Bearer " + expired,
		"wrong key":      "Bearer " + wrongKey,
		"missing userId": "Bearer " + noSubject,
	} {
		rec := doAuth(r, header)
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestJWTAuthRejectsUnsignedAlg(t *testing.T) {
	r := protectedRouter(testSecret)

	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "u-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	rec := doAuth(r, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMissingSecret(t *testing.T) {
	r := protectedRouter("")
	rec := doAuth(r, "Bearer whatever")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
