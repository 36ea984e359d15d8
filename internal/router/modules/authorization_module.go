package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-finances/internal/interface/http"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
)

// AuthorizationModule serves sign up and the session lifecycle.
// Public: POST /accounts, POST /signin, POST /refresh
// Protected: POST /signout, POST /profile/image
type AuthorizationModule struct {
	Handler *handlers.AuthorizationHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
}

func NewAuthorizationModule(h *handlers.AuthorizationHandler, auth gin.HandlerFunc, rdb *redis.Client) *AuthorizationModule {
	return &AuthorizationModule{Handler: h, Auth: auth, Redis: rdb}
}

func (m *AuthorizationModule) Name() string { return "authorization" }

func (m *AuthorizationModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIP(), nil)
	signinLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/accounts", signupLimiter, m.Handler.CreateAccount)
	rg.POST("/signin", signinLimiter, m.Handler.SignIn)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(m.Auth)
	{
		auth.POST("/signout", m.Handler.SignOut)
		auth.POST("/profile/image", middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByUserID(), nil), m.Handler.UploadImage)
	}
}
