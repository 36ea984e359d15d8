package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-finances/internal/interface/http"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
)

type FavoredModule struct {
	Handler *handlers.FavoredHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
	Max     int
	Window  time.Duration
}

func NewFavoredModule(h *handlers.FavoredHandler, auth gin.HandlerFunc, rdb *redis.Client, max int, window time.Duration) *FavoredModule {
	return &FavoredModule{Handler: h, Auth: auth, Redis: rdb, Max: max, Window: window}
}

func (m *FavoredModule) Name() string { return "favored" }

func (m *FavoredModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/favoreds")
	auth.Use(m.Auth, middleware.RateLimit(m.Redis, m.Max, m.Window, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
	}
}
