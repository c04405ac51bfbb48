package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists the browser origins allowed to call the API.
	// "*" allows any origin, without credentials.
	AllowedOrigins []string
	AllowedMethods string
	AllowedHeaders string
}

// CORS answers preflight requests and adds CORS headers for allowed origins.
// Requests from other origins are served without CORS headers, so browsers
// block them.
func CORS(config CORSConfig) gin.HandlerFunc {
	allowedSet := make(map[string]bool)
	allowAny := false
	for _, origin := range config.AllowedOrigins {
		if origin == "*" {
			allowAny = true
			continue
		}
		allowedSet[normalizeOrigin(origin)] = true
	}

	methods := config.AllowedMethods
	if methods == "" {
		methods = "GET,POST,PUT,DELETE,OPTIONS"
	}
	headers := config.AllowedHeaders
	if headers == "" {
		headers = "Content-Type,Authorization"
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		listed := origin != "" && allowedSet[normalizeOrigin(origin)]
		allowed := listed || (origin != "" && allowAny)

		h := c.Writer.Header()
		switch {
		case listed:
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		case allowed:
			h.Set("Access-Control-Allow-Origin", "*")
		}

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			if !allowed {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "origin not allowed"})
				return
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", "600")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// normalizeOrigin removes a trailing slash and lowercases.
func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}
