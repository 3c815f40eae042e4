package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"kanmind/internal/apperror"
	"kanmind/internal/model"
)

const (
	UserIDKey = "user_id"
	UserKey   = "user"
	TokenKey  = "token"
)

// Authenticator resolves a token key to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*model.User, error)
}

// TokenAuthMiddleware requires "Authorization: Token <key>" and stores the
// user, its id and the key in the gin context.
func TokenAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apperror.Respond(c, apperror.Authentication("Authorization header is required"))
			return
		}

		scheme, key, found := strings.Cut(authHeader, " ")
		key = strings.TrimSpace(key)
		if !found || scheme != "Token" || key == "" {
			apperror.Respond(c, apperror.Authentication("Authorization header format must be Token {key}"))
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), key)
		if err != nil {
			apperror.Respond(c, err)
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Set(TokenKey, key)
		c.Next()
	}
}

// CurrentUser returns the user set by TokenAuthMiddleware.
func CurrentUser(c *gin.Context) *model.User {
	user, _ := c.Get(UserKey)
	u, _ := user.(*model.User)
	return u
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
