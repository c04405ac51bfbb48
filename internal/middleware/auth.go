// Package middleware provides HTTP middleware for the series service.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "auth.claims"

// Authenticate verifies the bearer token and stores its claims on the context.
func Authenticate(jwtService service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token not provided"})
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			message := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Policy decides whether the authenticated caller may proceed.
type Policy func(claims *service.Claims) bool

// HasRole allows callers holding any of roles.
func HasRole(roles ...models.Role) Policy {
	return func(claims *service.Claims) bool {
		for _, role := range roles {
			if claims.Role == role {
				return true
			}
		}
		return false
	}
}

// Authorize rejects callers the policy does not allow. It must run after Authenticate.
func Authorize(policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !policy(claims) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RequireRole is Authorize(HasRole(roles...)).
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return Authorize(HasRole(roles...))
}

// ClaimsFrom returns the claims stored by Authenticate.
func ClaimsFrom(c *gin.Context) (*service.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*service.Claims)
	return claims, ok && claims != nil
}

// SetClaims stores claims on the context, as Authenticate does.
func SetClaims(c *gin.Context, claims *service.Claims) {
	c.Set(claimsKey, claims)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
