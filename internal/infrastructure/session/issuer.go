// Package session issues JWT pairs and tracks the current session id of each
// user in a Redis hash, so refresh tokens rotate and sign-out revokes them.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/internal/application/authorization"
	"github.com/oksasatya/go-finances/pkg/helpers"
)

// Issuer implements authorization.TokenIssuer. Without Redis it is stateless:
// tokens are honored until they expire and Revoke is a no-op.
type Issuer struct {
	JWT    *helpers.JWTManager
	Redis  redis.Cmdable
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewIssuer(jwt *helpers.JWTManager, rdb redis.Cmdable, logger *logrus.Logger) *Issuer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Issuer{JWT: jwt, Redis: rdb, TTL: jwt.RefreshTTL, Logger: logger}
}

func Key(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func (i *Issuer) Issue(ctx context.Context, userID string) (authorization.Session, error) {
	sid := uuid.NewString()
	sess, err := i.pair(userID, sid)
	if err != nil {
		return authorization.Session{}, err
	}
	if i.Redis != nil {
		key := Key(userID)
		pipe := i.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    userID,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, i.ttl())
		if _, err := pipe.Exec(ctx); err != nil {
			return authorization.Session{}, fmt.Errorf("store session: %w", err)
		}
	}
	return sess, nil
}

// Refresh accepts only the refresh token of the current session and rotates
// the session id, so each refresh token works once.
func (i *Issuer) Refresh(ctx context.Context, refreshToken string) (authorization.Session, error) {
	claims, err := i.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return authorization.Session{}, authorization.ErrInvalidSession
	}
	if err := i.checkCurrent(ctx, claims); err != nil {
		return authorization.Session{}, err
	}

	sid := uuid.NewString()
	sess, err := i.pair(claims.UserID, sid)
	if err != nil {
		return authorization.Session{}, err
	}
	if i.Redis != nil {
		key := Key(claims.UserID)
		pipe := i.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, i.ttl())
		if _, err := pipe.Exec(ctx); err != nil {
			return authorization.Session{}, fmt.Errorf("rotate session: %w", err)
		}
	}
	return sess, nil
}

func (i *Issuer) Revoke(ctx context.Context, userID string) error {
	if i.Redis == nil {
		return nil
	}
	return helpers.RedisDel(ctx, i.Redis, Key(userID))
}

// Validate returns the user of a live access token.
func (i *Issuer) Validate(ctx context.Context, accessToken string) (string, error) {
	claims, err := i.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return "", authorization.ErrInvalidSession
	}
	if err := i.checkCurrent(ctx, claims); err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (i *Issuer) checkCurrent(ctx context.Context, claims *helpers.Claims) error {
	if claims.UserID == "" {
		return authorization.ErrInvalidSession
	}
	if i.Redis == nil {
		return nil
	}
	data, err := i.Redis.HGetAll(ctx, Key(claims.UserID)).Result()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(data) == 0 || data["sid"] != claims.SessionID {
		return authorization.ErrInvalidSession
	}
	return nil
}

func (i *Issuer) pair(userID, sid string) (authorization.Session, error) {
	access, aexp, err := i.JWT.GenerateAccessToken(userID, sid)
	if err != nil {
		i.Logger.WithError(err).WithField("user_id", userID).Error("generate access token failed")
		return authorization.Session{}, err
	}
	refresh, rexp, err := i.JWT.GenerateRefreshToken(userID, sid)
	if err != nil {
		i.Logger.WithError(err).WithField("user_id", userID).Error("generate refresh token failed")
		return authorization.Session{}, err
	}
	return authorization.Session{
		UserID:           userID,
		Token:            access,
		ExpiresAt:        aexp,
		RefreshToken:     refresh,
		RefreshExpiresAt: rexp,
	}, nil
}

func (i *Issuer) ttl() time.Duration {
	if i.TTL <= 0 {
		return 24 * time.Hour
	}
	return i.TTL
}
