package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/pkg/helpers"
	"github.com/oksasatya/go-finances/pkg/response"
)

const CtxUserIDKey = "userID"

// SessionValidator resolves a live access token to its user.
type SessionValidator interface {
	Validate(ctx context.Context, accessToken string) (string, error)
}

// Auth accepts the access_token cookie or an Authorization: Bearer header and
// sets userID in the Gin context on success.
func Auth(sessions SessionValidator, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := accessToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		userID, err := sessions.Validate(c.Request.Context(), token)
		if errors.Is(err, authorization.ErrInvalidSession) {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired session", nil)
			c.Abort()
			return
		}
		if err != nil {
			if logger != nil {
				logger.WithError(err).Error("session lookup failed")
			}
			response.Error[any](c, http.StatusServiceUnavailable, "session store unavailable", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}

func accessToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, tok, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(tok)
		}
	}
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil {
		return tok
	}
	return ""
}
