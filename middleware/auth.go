package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenAuthenticator resolves a session token to the admin username.
type TokenAuthenticator interface {
	Authenticate(token string) (string, error)
}

type AuthMiddleware struct {
	authenticator TokenAuthenticator
}

func NewAuthMiddleware(authenticator TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

// RequireAuth validates the session token and sets the admin username on the
// context. Failures are left to the error handler.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		username, err := am.authenticator.Authenticate(extractToken(c))
		if err != nil {
			logrus.Debugf("Rejected token: %v", err)
			c.Error(err)
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	})
}

// extractToken reads the Authorization header. The Bearer prefix is
// optional.
func extractToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authHeader
}

// GetCurrentUsername returns the authenticated admin username from context
func GetCurrentUsername(c *gin.Context) (string, bool) {
	username := c.GetString("username")
	return username, username != ""
}
