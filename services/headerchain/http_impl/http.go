// Package http_impl exposes the header chain service as a JSON API served by echo.
package http_impl

import (
	"context"
	"net/http"
	"time"

	"github.com/bitcoin-sv/headerchain/errors"
	"github.com/bitcoin-sv/headerchain/model"
	"github.com/bitcoin-sv/headerchain/settings"
	"github.com/bitcoin-sv/headerchain/ulogger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SenderHeader carries the identity of the caller. An absent header is the anonymous sender.
const SenderHeader = "X-Sender"

// Service is the part of the header chain server the API calls into.
type Service interface {
	Initialize(ctx context.Context, sender string, req *model.InitRequest) error
	UpdateBlockOffset(ctx context.Context, sender string, headers []string) error
	GetContractInfo(ctx context.Context) (*model.InfoResponse, error)
	Health(ctx context.Context, checkLiveness bool) (int, string, error)
}

type HTTP struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	service   Service
	e         *echo.Echo
	startTime time.Time
}

// New creates the echo server with these routes:
//
//	POST {prefix}/init    InitRequest, 200 {}
//	POST {prefix}/update  UpdateRequest, 200 {}
//	GET  {prefix}/info    InfoResponse
//	GET  /health, /health/readiness, /health/liveness, /alive, /metrics
func New(logger ulogger.Logger, tSettings *settings.Settings, service Service) (*HTTP, error) {
	initPrometheusMetrics()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("8M"))

	h := &HTTP{
		logger:    logger,
		settings:  tSettings,
		service:   service,
		e:         e,
		startTime: time.Now(),
	}

	if logger.LogLevel() == int(gocore.DEBUG) {
		e.Use(customLoggerMiddleware(logger))
	}

	e.GET("/alive", h.Alive)
	e.GET("/health", h.Health(false))
	e.GET("/health/readiness", h.Health(false))
	e.GET("/health/liveness", h.Health(true))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiGroup := e.Group(tSettings.HeaderChain.APIPrefix)

	apiGroup.POST("/init", h.Initialize)
	apiGroup.POST("/update", h.UpdateBlockOffset)
	apiGroup.GET("/info", h.GetContractInfo)

	return h, nil
}

// Handler exposes the router, mainly for httptest.
func (h *HTTP) Handler() http.Handler {
	return h.e
}

func (h *HTTP) Start(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()

		h.logger.Infof("[HeaderChain] HTTP service shutting down")

		if err := h.e.Shutdown(context.Background()); err != nil {
			h.logger.Errorf("[HeaderChain] HTTP service shutdown error: %s", err)
		}
	}()

	h.logger.Infof("[HeaderChain] HTTP listening on %s", addr)

	err := h.e.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.NewServiceError("[HeaderChain] HTTP server failed", err)
	}

	return nil
}

func (h *HTTP) Stop(ctx context.Context) error {
	return h.e.Shutdown(ctx)
}

func customLoggerMiddleware(logger ulogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			res := c.Response()

			logger.Debugf("%s %s %d %s", req.Method, req.URL.Path, res.Status, time.Since(start))

			return err
		}
	}
}
