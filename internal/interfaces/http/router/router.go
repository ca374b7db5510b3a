package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that register their own routes
type RouteRegistrar interface {
	RegisterRoutes(r *Router)
}

// Router wires registered handlers onto a gin engine. The storefront surface
// lives at the root; operational routes live under /admin.
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// NewRouter creates a new router
func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		engine: engine,
	}
}

// Register adds route registrars
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.registrars = append(r.registrars, registrars...)
}

// Setup lets every registrar attach its routes
func (r *Router) Setup() {
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(r)
	}
}

// Public returns the root route group for storefront-facing endpoints
func (r *Router) Public() *gin.RouterGroup {
	return r.engine.Group("")
}

// Admin returns the route group for operational endpoints
func (r *Router) Admin() *gin.RouterGroup {
	return r.engine.Group("/admin")
}

// Provider returns the route group the commerce platform calls to drive the
// fulfillment provider over a shipment's lifecycle
func (r *Router) Provider() *gin.RouterGroup {
	return r.engine.Group("/provider")
}

// Engine exposes the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
