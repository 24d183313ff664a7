package middleware

import (
	"net/http"
	"strings"
	"time"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	contextUserKey  = "currentUser"
	contextTokenKey = "sessionToken"
)

// Authenticate resolves the bearer session token to a user and stores both on
// the request context. Requests without a valid session are rejected.
func Authenticate(users usecase.UserUseCase, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Middleware: Authorization header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warnf("Middleware: Invalid Authorization header format: %s", authHeader)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		token := parts[1]
		if token == "" {
			log.Warn("Middleware: Bearer token is empty")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		user, err := users.ValidateToken(token)
		if err != nil {
			log.Warnf("Middleware: Session validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		c.Set(contextUserKey, user)
		c.Set(contextTokenKey, token)
		c.Next()
	}
}

// RequireAdmin gates the admin surface. The check runs server-side against
// the stored is_admin flag; there is no client-side shortcut.
func RequireAdmin(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			log.Warn("Middleware: Admin route hit without an authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !user.IsAdmin {
			log.Warnf("Middleware: User %d attempted to access admin route %s", user.ID, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by Authenticate.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}

// SessionToken returns the raw bearer token placed by Authenticate.
func SessionToken(c *gin.Context) string {
	return c.GetString(contextTokenKey)
}

func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"remote_ip": c.ClientIP(),
		})

		c.Next()

		statusCode := c.Writer.Status()
		completedEntry := entry.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  time.Since(startTime).Milliseconds(),
		})

		if len(c.Errors) > 0 {
			completedEntry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		} else if statusCode >= 500 {
			completedEntry.Error("Request completed with server error")
		} else if statusCode >= 400 {
			completedEntry.Warn("Request completed with client error")
		} else {
			completedEntry.Info("Request completed successfully")
		}
	}
}
