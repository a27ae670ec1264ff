package testutil

import (
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/fichas-api/middleware"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, issuer string, scopes []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.TokenClaims{
			Scope: strings.Join(scopes, " "),
		},
	}
}

// MockAuthMiddleware stands in for the JWT guard, marking every request as authenticated
func MockAuthMiddleware(userID string, scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.ClaimsKey, MockValidatedClaims(userID, "https://test.auth0.com/", scopes))
		c.Next()
	}
}
