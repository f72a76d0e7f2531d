package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nileshnishad/laboursampark-backend/pkg/jwt"
	"github.com/nileshnishad/laboursampark-backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserMobileKey is the context key for user mobile
	UserMobileKey = "userMobile"
	// UserTypeKey is the context key for user type
	UserTypeKey = "userType"
)

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// extractBearerToken pulls the token out of the authorization header,
// accepting it with or without the Bearer prefix.
func extractBearerToken(authHeader string) string {
	token := authHeader
	if strings.HasPrefix(authHeader, BearerPrefix) {
		token = strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return strings.TrimSpace(token)
}

func attachIdentity(c *gin.Context, claims *jwt.Claims) {
	c.Set(UserIDKey, claims.UserID)
	c.Set(UserEmailKey, claims.Email)
	c.Set(UserMobileKey, claims.Mobile)
	c.Set(UserTypeKey, claims.UserType)
}

// AuthMiddleware gates protected routes behind a valid bearer token.
// Failure causes carry distinct messages to aid client-side retry logic.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Access token is required. Please login first.")
			return
		}

		tokenString := extractBearerToken(authHeader)
		if tokenString == "" {
			abortUnauthorized(c, "Invalid token format. Use: Authorization: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "token rejected")
			if err == jwt.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired. Please login again.")
				return
			}
			abortUnauthorized(c, "Invalid token. Please login again.")
			return
		}

		if claims.UserID == uuid.Nil {
			abortUnauthorized(c, "Invalid token: missing userId")
			return
		}

		attachIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware decodes a bearer token the same way as
// AuthMiddleware but never blocks: any failure lets the request proceed
// with no identity attached.
func OptionalAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader != "" {
			tokenString := extractBearerToken(authHeader)
			if tokenString != "" {
				if claims, err := jwtService.ValidateToken(tokenString); err == nil && claims.UserID != uuid.Nil {
					attachIdentity(c, claims)
				}
			}
		}
		c.Next()
	}
}

// GetUserID gets the authenticated user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}

// GetUserType gets the authenticated user type from context
func GetUserType(c *gin.Context) (string, bool) {
	value, exists := c.Get(UserTypeKey)
	if !exists {
		return "", false
	}
	userType, ok := value.(string)
	return userType, ok
}

// RequireUserType creates a middleware allowing only the given user types
func RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType, exists := GetUserType(c)
		if !exists {
			abortUnauthorized(c, "Authentication required")
			return
		}

		for _, t := range types {
			if userType == t {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied. Required userType: " + strings.Join(types, ", "),
		})
	}
}
