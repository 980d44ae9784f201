// Package httpapi exposes the venue operations over HTTP. It is a thin
// surface: all trading semantics live behind the venue service.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tradex/internal/logger"
	"tradex/internal/venue"

	"github.com/gin-gonic/gin"
)

type Server struct {
	addr   string
	router *gin.Engine
}

type ServerConfig struct {
	Addr  string
	Venue *venue.Service
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Venue == nil {
		return nil, errors.New("http server requires a venue service")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &handlers{venue: cfg.Venue}
	api := router.Group("/api/v1")
	api.POST("/orders", h.submitOrder)
	api.GET("/orders/:id", h.getOrder)
	api.GET("/orders/:id/fills", h.getFills)
	api.POST("/orders/:id/cancel", h.cancelOrder)
	api.GET("/accounts/:id/positions", h.listPositions)
	api.GET("/accounts/:id/balance", h.getBalance)
	api.GET("/tape/:symbol", h.getTape)

	return &Server{addr: cfg.Addr, router: router}, nil
}

func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Router exposes the underlying handler for test harnesses.
func (s *Server) Router() http.Handler { return s.router }

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		c.Next()
		logger.Debugf("http %s %s -> %d (%s)", method, path, c.Writer.Status(), time.Since(start))
	}
}
