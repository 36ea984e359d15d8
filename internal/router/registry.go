package router

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

// APIPrefix is the group every module is mounted under.
const APIPrefix = "/api"

var ErrDuplicateModule = errors.New("module already added")

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	names       map[string]struct{}
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(APIPrefix), names: map[string]struct{}{}}
}

// Use appends middleware applied to the API group only.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) error {
	if _, ok := r.names[mod.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, mod.Name())
	}
	r.names[mod.Name()] = struct{}{}
	r.modules = append(r.modules, mod)
	return nil
}

// Modules lists module names in the order they were added.
func (r *Registry) Modules() []string {
	out := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		out = append(out, m.Name())
	}
	return out
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
