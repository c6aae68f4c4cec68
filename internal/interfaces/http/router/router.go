package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts domain route groups under a versioned API prefix
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
	system     []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithMiddleware applies handlers to every versioned API route,
// typically authentication.
func WithMiddleware(handlers ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, handlers...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a RouteRegistrar mounted under /api/<version>
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterSystem adds a RouteRegistrar mounted at the root without the
// API middleware, for health checks and similar endpoints.
func (r *Router) RegisterSystem(registrar RouteRegistrar) *Router {
	r.system = append(r.system, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	root := r.engine.Group("")
	for _, registrar := range r.system {
		registrar.RegisterRoutes(root)
	}

	api := r.engine.Group("/api/" + r.apiVersion)
	if len(r.middleware) > 0 {
		api.Use(r.middleware...)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup creates a route group for a specific domain
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:   name,
		prefix: prefix,
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:   method,
		path:     path,
		handlers: handlers,
	})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar interface
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}

	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}

	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
