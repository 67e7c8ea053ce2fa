package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type RouterConfig struct {
	// AllowedOrigins lists the browser origins allowed to call the API with
	// credentials. Empty disables CORS headers.
	AllowedOrigins []string

	// Gatherer is served at /metrics. Nil omits the endpoint.
	Gatherer prometheus.Gatherer
	Observer HTTPObserver

	// OrderFeed is mounted at /ws/orders. Nil omits the endpoint.
	OrderFeed http.Handler
}

// NewRouter builds the echo instance serving s.
func NewRouter(ctx context.Context, s *Server, cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = publishSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(s.logger)

	e.Use(observe(s.logger, cfg.Observer))
	e.Use(middleware.Recover())
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(echo.WrapMiddleware(cors.New(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
			AllowedHeaders:   []string{echo.HeaderContentType, echo.HeaderAuthorization},
			AllowCredentials: true,
		}).Handler))
	}

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	if cfg.OrderFeed != nil {
		e.GET("/ws/orders", echo.WrapHandler(cfg.OrderFeed))
	}

	user := []echo.MiddlewareFunc{s.requireUser, validate}
	admin := []echo.MiddlewareFunc{s.requireUser, s.requireAdmin, validate}

	e.POST("/api/auth/connect", s.Connect, validate)
	e.GET("/api/auth/me", s.Me, user...)
	e.GET("/api/prices", s.Prices, validate)

	e.GET("/api/orders", s.ListOrders, user...)
	e.POST("/api/orders", s.CreateOrder, user...)
	e.GET("/api/orders/:id", s.GetOrder, user...)
	e.PATCH("/api/orders/:id", s.UpdateOrder, user...)
	e.GET("/api/orders/:id/events", s.ListOrderEvents, user...)

	e.GET("/api/admin/orders", s.AdminListOrders, admin...)
	e.GET("/api/admin/users", s.ListUsers, admin...)
	e.PATCH("/api/admin/users/:id", s.UpdateUser, admin...)
	e.GET("/api/admin/fees", s.ListFees, admin...)
	e.PATCH("/api/admin/fees", s.UpdateFee, admin...)

	s.logger.Debug("routes registered", zap.Int("count", len(e.Routes())))
	return e, nil
}
