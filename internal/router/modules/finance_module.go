package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-finances/internal/interface/http"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
)

type FinanceModule struct {
	Handler *handlers.FinanceHandler
	Auth    gin.HandlerFunc
	Redis   *redis.Client
	Max     int
	Window  time.Duration
}

func NewFinanceModule(h *handlers.FinanceHandler, auth gin.HandlerFunc, rdb *redis.Client, max int, window time.Duration) *FinanceModule {
	return &FinanceModule{Handler: h, Auth: auth, Redis: rdb, Max: max, Window: window}
}

func (m *FinanceModule) Name() string { return "finance" }

func (m *FinanceModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(m.Auth, middleware.RateLimit(m.Redis, m.Max, m.Window, middleware.KeyByUserID(), nil))
	{
		auth.POST("/incomings", m.Handler.CreateIncoming)
		auth.GET("/incomings", m.Handler.ListIncomings)
		auth.POST("/expenses", m.Handler.CreateExpense)
		auth.GET("/expenses", m.Handler.ListExpenses)
	}
}
