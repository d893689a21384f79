// Package httpapi exposes verification and the challenge catalog over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/shellcon/aquacheck/internal/domain"
)

// Verifier renders a verdict for one category.
type Verifier interface {
	Verify(ctx context.Context, c domain.Category) (domain.Verdict, error)
}

// Catalog serves challenge metadata.
type Catalog interface {
	Catalog(ctx context.Context, withStatus bool) (domain.Catalog, error)
	Challenge(ctx context.Context, id int) (domain.Challenge, error)
}

// Options configures NewServer.
type Options struct {
	Addr        string
	ServiceName string
	Version     string
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
	// ProbeClients, when set, counts the engine's own probe clients. Health
	// reports degraded once more than one has been built.
	ProbeClients domain.CounterSampler
	Logger       *slog.Logger
}

// Server is the engine's HTTP front end.
type Server struct {
	router *gin.Engine
	addr   string
	logger *slog.Logger
}

func NewServer(verifier Verifier, catalog Catalog, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "aquacheck"
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(opts.ServiceName))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(opts.Logger))

	h := &handlers{
		verifier:     verifier,
		catalog:      catalog,
		version:      opts.Version,
		probeClients: opts.ProbeClients,
		logger:       opts.Logger,
	}
	api := router.Group("/api")
	api.GET("/health", h.health)
	api.GET("/challenges/current", h.listChallenges)
	api.GET("/challenges/:id", h.getChallenge)
	api.GET("/challenges/:id/validate", h.validateChallenge)
	api.GET("/verify/:category", h.verifyCategory)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	return &Server{router: router, addr: opts.Addr, logger: opts.Logger}
}

// Handler returns the router for use with httptest or a custom server.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.addr, err)
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}

type handlers struct {
	verifier     Verifier
	catalog      Catalog
	version      string
	probeClients domain.CounterSampler
	logger       *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) health(c *gin.Context) {
	body := gin.H{"status": "ok", "version": h.version}
	if h.probeClients == nil {
		c.JSON(http.StatusOK, body)
		return
	}

	n, err := h.probeClients.Sample(c.Request.Context())
	if err != nil {
		h.logger.Warn("probe client counter unavailable", "error", err)
		body["probe_clients_error"] = err.Error()
		c.JSON(http.StatusOK, body)
		return
	}
	body["probe_clients"] = n
	if n > 1 {
		h.logger.Error("probe client constructed more than once", "probe_clients", n)
		body["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *handlers) validateChallenge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: %q", domain.ErrUnknownChallenge, c.Param("id")))
		return
	}
	category, err := domain.CategoryForChallenge(id)
	if err != nil {
		writeError(c, err)
		return
	}
	h.verify(c, category)
}

func (h *handlers) verifyCategory(c *gin.Context) {
	category, err := domain.ParseCategory(c.Param("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.verify(c, category)
}

func (h *handlers) verify(c *gin.Context, category domain.Category) {
	v, err := h.verifier.Verify(c.Request.Context(), category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (h *handlers) listChallenges(c *gin.Context) {
	withStatus, _ := strconv.ParseBool(c.DefaultQuery("status", "false"))
	cat, err := h.catalog.Catalog(c.Request.Context(), withStatus)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handlers) getChallenge(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: %q", domain.ErrUnknownChallenge, c.Param("id")))
		return
	}
	ch, err := h.catalog.Challenge(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrUnknownChallenge) {
		status = http.StatusNotFound
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}
