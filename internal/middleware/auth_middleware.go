package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sk192011s/2d-backup/internal/config"
	"github.com/Sk192011s/2d-backup/internal/models"
	"github.com/Sk192011s/2d-backup/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// JWTAuthMiddleware creates a gin middleware for JWT authentication. The
// verified username is the request's identity; handlers never trust a
// username from the request body.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const bearerSchema = "Bearer "
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}
		if !strings.HasPrefix(authHeader, bearerSchema) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			return
		}

		claims, err := utils.ValidateJWT(authHeader[len(bearerSchema):], cfg)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(ContextUsername, username)
		c.Set(ContextRole, role)
		c.Next()
	}
}

// AdminOnlyMiddleware rejects requests whose token does not carry the admin
// role. It must run after JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
