package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Soulima01/Pranaya/internal/config"
	"github.com/Soulima01/Pranaya/internal/store"
	"github.com/Soulima01/Pranaya/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)

		c.Next()
	}
}

// AssessmentGateMiddleware blocks chat surfaces until the onboarding
// assessment has been completed. It should be used *after* AuthMiddleware.
// Clients treat the "assessment_required" error as a redirect to onboarding.
func AssessmentGateMiddleware(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			utils.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		profile, err := s.Profile(userID)
		if err != nil {
			utils.InternalServerError(c, "Failed to load profile: "+err.Error())
			c.Abort()
			return
		}

		if !profile.IsAssessmentDone {
			utils.Forbidden(c, "assessment_required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}
