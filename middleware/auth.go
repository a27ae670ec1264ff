package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/config"
	"github.com/rs/zerolog"
)

// Context keys set by JWTGuard
const (
	UserIDKey = "user_id"
	ClaimsKey = "validated_claims"
)

const (
	jwksCacheTTL  = 5 * time.Minute
	allowedSkew   = time.Minute
	codeBadToken  = "INVALID_TOKEN"
	codeNoClaims  = "MISSING_CLAIMS"
	codeNoScope   = "INSUFFICIENT_SCOPE"
	codeNoUserID  = "MISSING_USER_ID"
	codeBadUserID = "INVALID_USER_ID"
	codeBadClaims = "INVALID_CLAIMS"
)

// TokenClaims are the non-registered claims read from the access token
type TokenClaims struct {
	Scope string `json:"scope"`
}

// Validate satisfies validator.CustomClaims; scopes are checked per route
func (TokenClaims) Validate(context.Context) error {
	return nil
}

// HasScope reports whether scope is one of the space-separated token scopes
func (tc TokenClaims) HasScope(scope string) bool {
	return slices.Contains(strings.Fields(tc.Scope), scope)
}

// JWTGuard validates RS256 bearer tokens issued by the configured Auth0 tenant.
// Authenticated requests carry the token subject under UserIDKey and the claims under ClaimsKey.
func JWTGuard(cfg *config.Config, log zerolog.Logger) (gin.HandlerFunc, error) {
	issuer, err := url.Parse(fmt.Sprintf("https://%s/", cfg.Auth0Domain))
	if err != nil {
		return nil, fmt.Errorf("invalid auth0 domain %q: %w", cfg.Auth0Domain, err)
	}

	keys := jwks.NewCachingProvider(issuer, jwksCacheTTL)
	tokenValidator, err := validator.New(
		keys.KeyFunc,
		validator.RS256,
		issuer.String(),
		[]string{cfg.Auth0Audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &TokenClaims{} }),
		validator.WithAllowedClockSkew(allowedSkew),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build token validator: %w", err)
	}

	checker := jwtmiddleware.New(
		tokenValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("request rejected by JWT guard")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(authFailure(codeBadToken, "Token de acesso inválido ou ausente"))
		}),
	)

	return func(c *gin.Context) {
		var claims *validator.ValidatedClaims
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			claims, _ = r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
			c.Request = r
		})

		checker.CheckJWT(next).ServeHTTP(c.Writer, c.Request)
		if claims == nil {
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.RegisteredClaims.Subject)
		c.Set(ClaimsKey, claims)
		c.Next()
	}, nil
}

// RequireScope rejects requests whose token lacks scope. It must run after JWTGuard.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, authFailure(codeNoClaims, "Credenciais não encontradas"))
			return
		}

		tc, ok := claims.CustomClaims.(*TokenClaims)
		if !ok || !tc.HasScope(scope) {
			c.AbortWithStatusJSON(http.StatusForbidden, authFailure(codeNoScope, "Permissão insuficiente: requer "+scope))
			return
		}

		c.Next()
	}
}

// GetUserID returns the token subject stored by JWTGuard
func GetUserID(c *gin.Context) (string, error) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", &AuthError{Code: codeNoUserID, Message: "no authenticated user on this request"}
	}
	id, ok := v.(string)
	if !ok {
		return "", &AuthError{Code: codeBadUserID, Message: fmt.Sprintf("user id has type %T", v)}
	}
	return id, nil
}

// GetClaims returns the validated token claims stored by JWTGuard
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, &AuthError{Code: codeNoClaims, Message: "no token claims on this request"}
	}
	claims, ok := v.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: codeBadClaims, Message: fmt.Sprintf("token claims have type %T", v)}
	}
	return claims, nil
}

// AuthError is returned by the context accessors
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func authFailure(code, message string) gin.H {
	return gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": nil,
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}
