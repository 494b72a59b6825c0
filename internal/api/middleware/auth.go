package middleware

import (
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-crm-sync/internal/api/shared/errors"
	"github.com/feral-file/ff-crm-sync/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY    contextKey = "auth_type"
	AUTH_SUBJECT_KEY contextKey = "auth_subject"
	JWT_CLAIMS_KEY   contextKey = "jwt_claims"
)

// BasicRealm is announced in the WWW-Authenticate header of a 401
const BasicRealm = "Authentication Required"

// AuthConfig holds authentication configuration.
// Each scheme is accepted only when its credentials are configured.
type AuthConfig struct {
	Username     string
	Password     string
	JWTPublicKey string // RSA public key in PEM format
	APIKeys      []string
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success     bool
	AuthType    string // "basic", "jwt" or "apikey"
	Claims      *jwt.RegisteredClaims
	AuthSubject string
	Error       error
}

func failed(err error) AuthResult {
	return AuthResult{Error: err}
}

// authenticator checks Authorization headers against credentials prepared once per config
type authenticator struct {
	username string
	password string
	apiKeys  [][]byte

	publicKey    *rsa.PublicKey
	publicKeyErr error
}

func newAuthenticator(cfg AuthConfig) *authenticator {
	a := &authenticator{
		username: cfg.Username,
		password: cfg.Password,
	}
	for _, key := range cfg.APIKeys {
		if key != "" {
			a.apiKeys = append(a.apiKeys, []byte(key))
		}
	}

	if cfg.JWTPublicKey == "" {
		a.publicKeyErr = errors.New("JWT public key not configured")
	} else if a.publicKey, a.publicKeyErr = parseRSAPublicKey(cfg.JWTPublicKey); a.publicKeyErr != nil {
		a.publicKeyErr = fmt.Errorf("failed to parse RSA public key: %w", a.publicKeyErr)
	}

	return a
}

// Authenticate validates the Authorization header and returns the authentication result
func Authenticate(authHeader string, cfg AuthConfig) AuthResult {
	return newAuthenticator(cfg).authenticate(authHeader)
}

func (a *authenticator) authenticate(authHeader string) AuthResult {
	if authHeader == "" {
		return failed(errors.New("missing Authorization header"))
	}

	scheme, credentials, ok := strings.Cut(authHeader, " ")
	if !ok {
		return failed(errors.New("invalid Authorization header format"))
	}

	switch strings.ToLower(scheme) {
	case "basic":
		username, err := a.basic(credentials)
		if err != nil {
			return failed(err)
		}
		return AuthResult{Success: true, AuthType: "basic", AuthSubject: username}

	case "bearer":
		claims, err := a.bearer(credentials)
		if err != nil {
			return failed(err)
		}
		return AuthResult{Success: true, AuthType: "jwt", Claims: claims, AuthSubject: claims.Subject}

	case "apikey":
		if err := a.apiKey(credentials); err != nil {
			return failed(err)
		}
		return AuthResult{Success: true, AuthType: "apikey"}
	}

	return failed(fmt.Errorf("unsupported authorization type: %s", scheme))
}

// Auth returns a gin middleware accepting Basic, Bearer JWT and API key credentials.
// Rejected requests get a 401 with a Basic challenge.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	a := newAuthenticator(cfg)

	return func(c *gin.Context) {
		result := a.authenticate(c.GetHeader("Authorization"))
		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.Header("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", BasicRealm))
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierrors.ErrorResponse{Error: apiErr})
			return
		}

		c.Set(AUTH_TYPE_KEY, result.AuthType)
		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}
		if result.AuthSubject != "" {
			c.Set(AUTH_SUBJECT_KEY, result.AuthSubject)
		}
		logger.DebugCtx(c.Request.Context(), "Authentication successful",
			zap.String("auth_type", result.AuthType),
			zap.String("subject", result.AuthSubject),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// basic decodes user:password credentials and compares them with the configured pair
func (a *authenticator) basic(credentials string) (string, error) {
	if a.username == "" {
		return "", errors.New("basic credentials not configured")
	}

	decoded, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		return "", errors.New("invalid basic credentials encoding")
	}

	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", errors.New("invalid basic credentials format")
	}

	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.username))
	passMatch := subtle.ConstantTimeCompare([]byte(pass), []byte(a.password))
	if userMatch&passMatch != 1 {
		return "", errors.New("invalid username or password")
	}

	return user, nil
}

// bearer verifies an RS256 token; jwt checks exp and nbf while parsing
func (a *authenticator) bearer(token string) (*jwt.RegisteredClaims, error) {
	if a.publicKeyErr != nil {
		return nil, a.publicKeyErr
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	}, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	return claims, nil
}

func (a *authenticator) apiKey(key string) error {
	if len(a.apiKeys) == 0 {
		return errors.New("no API keys configured")
	}

	for _, valid := range a.apiKeys {
		if subtle.ConstantTimeCompare([]byte(key), valid) == 1 {
			return nil
		}
	}

	return errors.New("invalid API key")
}

// parseRSAPublicKey accepts PKIX and PKCS1 PEM blocks
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
