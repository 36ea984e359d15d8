package router

import (
	"errors"

	"github.com/oksasatya/go-finances/internal/container"
	handlers "github.com/oksasatya/go-finances/internal/interface/http"
	"github.com/oksasatya/go-finances/internal/interface/middleware"
	"github.com/oksasatya/go-finances/internal/router/modules"
)

// InitModules builds every feature module from the container and adds it to
// the registry. Call it once at startup, after the container is populated.
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	m := container.GetMediator()
	rdb := container.GetRedis()
	auth := middleware.Auth(container.GetSessions(), container.GetLogger())

	mods := []Module{
		modules.NewAuthorizationModule(handlers.NewAuthorizationHandler(m, cfg.CookieDomain, cfg.CookieSecure), auth, rdb),
		modules.NewFavoredModule(handlers.NewFavoredHandler(m), auth, rdb, cfg.RateLimitMax, cfg.RateLimitWindow),
		modules.NewFinanceModule(handlers.NewFinanceHandler(m), auth, rdb, cfg.RateLimitMax, cfg.RateLimitWindow),
	}
	if cfg.DebugMetricsEnabled {
		mods = append(mods, modules.NewDebugModule(rdb))
	}
	var errs []error
	for _, mod := range mods {
		errs = append(errs, r.Add(mod))
	}
	return errors.Join(errs...)
}
