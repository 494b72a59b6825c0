package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestAuthenticate_Basic(t *testing.T) {
	cfg := AuthConfig{Username: "crm", Password: "secret"}

	result := Authenticate(basicHeader("crm", "secret"), cfg)
	require.True(t, result.Success)
	assert.Equal(t, "basic", result.AuthType)
	assert.Equal(t, "crm", result.AuthSubject)

	assert.False(t, Authenticate(basicHeader("crm", "nope"), cfg).Success)
	assert.False(t, Authenticate("Basic !!!", cfg).Success)
	assert.False(t, Authenticate("Basic "+base64.StdEncoding.EncodeToString([]byte("no-colon")), cfg).Success)
	assert.False(t, Authenticate(basicHeader("", ""), AuthConfig{}).Success)
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := AuthConfig{APIKeys: []string{"k1", ""}}

	result := Authenticate("ApiKey k1", cfg)
	require.True(t, result.Success)
	assert.Equal(t, "apikey", result.AuthType)

	assert.False(t, Authenticate("ApiKey k2", cfg).Success)
	assert.False(t, Authenticate("ApiKey k1", AuthConfig{}).Success)
}

func TestAuthenticate_Malformed(t *testing.T) {
	cfg := AuthConfig{Username: "crm", Password: "secret"}

	for _, header := range []string{"", "Basic", "Digest abc"} {
		result := Authenticate(header, cfg)
		assert.False(t, result.Success, header)
		assert.Error(t, result.Error, header)
	}
}

func TestAuthenticate_JWT(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	sign := func(claims jwt.RegisteredClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	cfg := AuthConfig{JWTPublicKey: publicPEM}

	valid := sign(jwt.RegisteredClaims{
		Subject:   "scheduler",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	result := Authenticate("Bearer "+valid, cfg)
	require.True(t, result.Success, result.Error)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, "scheduler", result.AuthSubject)

	expired := sign(jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))})
	assert.False(t, Authenticate("Bearer "+expired, cfg).Success)

	assert.False(t, Authenticate("Bearer "+valid, AuthConfig{}).Success)
}

func TestAuth_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/private", Auth(AuthConfig{Username: "crm", Password: "secret"}), func(c *gin.Context) {
		authType, _ := c.Get(AUTH_TYPE_KEY)
		c.String(http.StatusOK, authType.(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.SetBasicAuth("crm", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "basic", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Authentication Required"`, w.Header().Get("WWW-Authenticate"))
	assert.Contains(t, w.Body.String(), `"unauthorized"`)
}
