package api

import (
	"ticketpix/internal/api/handlers"
	"ticketpix/pkg/health"
	"ticketpix/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	product        *handlers.ProductHandler
	order          *handlers.OrderHandler
	pix            *handlers.PixHandler
	checkout       *handlers.CheckoutHandler
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Storefront
	engine.GET("/products", r.product.List)
	engine.GET("/products/search", r.product.Search)
	engine.GET("/products/:slug", r.product.GetBySlug)

	engine.POST("/pix/keys/validate", r.pix.ValidateKey)
	engine.POST("/pix/amounts/format", r.pix.FormatAmount)
	engine.POST("/pix/payloads", r.pix.Payload)

	checkout := engine.Group("/checkout")
	{
		checkout.POST("/transfers", r.checkout.StartTransfer)
		checkout.POST("/tickets", r.checkout.StartTicket)
		checkout.GET("/sessions/:session_id", r.checkout.Get)
		checkout.PATCH("/sessions/:session_id", r.checkout.Update)
		checkout.DELETE("/sessions/:session_id", r.checkout.Abandon)
		checkout.POST("/sessions/:session_id/next", r.checkout.Next)
		checkout.POST("/sessions/:session_id/back", r.checkout.Back)
		checkout.POST("/sessions/:session_id/reset", r.checkout.Reset)
		checkout.GET("/sessions/:session_id/payload", r.checkout.Payload)
	}

	// Admin panel, unauthenticated
	admin := engine.Group("/admin")
	{
		admin.GET("/products", r.product.AdminList)
		admin.GET("/products/:product_id", r.product.AdminGet)
		admin.POST("/products", r.product.Create)
		admin.PUT("/products/:product_id", r.product.Update)

		admin.GET("/orders", r.order.Filter)
		admin.GET("/orders/:order_id", r.order.Get)
		admin.PATCH("/orders/:order_id/status", r.order.UpdateStatus)

		admin.GET("/stats", r.order.Stats)
	}
}

func NewRouter(
	product *handlers.ProductHandler,
	order *handlers.OrderHandler,
	pix *handlers.PixHandler,
	checkout *handlers.CheckoutHandler,
	healthRegistry *health.Registry,
) *Router {
	return &Router{
		product:        product,
		order:          order,
		pix:            pix,
		checkout:       checkout,
		healthRegistry: healthRegistry,
	}
}
