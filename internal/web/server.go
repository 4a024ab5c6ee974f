package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/saltyorg/northwind/internal/config"
	"github.com/saltyorg/northwind/internal/web/handlers"
	"github.com/saltyorg/northwind/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	store      handlers.Store
	addr       string
	allowedNet *net.IPNet
	rateLimit  int
	timeouts   config.TimeoutConfig
	router     *chi.Mux
	handlers   *handlers.Handlers
}

// NewServer creates a new web server backed by store
func NewServer(store handlers.Store, cfg *config.Config) (*Server, error) {
	var allowedNet *net.IPNet
	if cfg.AllowSubnet != "" {
		_, parsedNet, err := net.ParseCIDR(cfg.AllowSubnet)
		if err != nil {
			return nil, fmt.Errorf("invalid allow-subnet CIDR: %s", cfg.AllowSubnet)
		}
		allowedNet = parsedNet
	}

	s := &Server{
		store:      store,
		addr:       cfg.Address(),
		allowedNet: allowedNet,
		rateLimit:  cfg.RateLimit,
		timeouts:   cfg.Timeouts,
		router:     chi.NewRouter(),
		handlers:   handlers.New(store),
	}
	s.setupRoutes()

	return s, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router
	h := s.handlers

	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.allowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.RateLimit(s.rateLimit))
	r.Use(chimiddleware.Timeout(s.timeouts.Request))

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/", h.Index)
	r.Get("/healthz", h.Health)

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.ListCategories)
		r.Post("/", h.CreateCategory)
		r.Get("/{cat_id}", h.GetCategory)
		r.Put("/{cat_id}", h.UpdateCategory)
		r.Delete("/{cat_id}", h.DeleteCategory)
	})

	r.Get("/customers", h.ListCustomers)
	r.Get("/employees", h.ListEmployees)
	r.Get("/products_extended", h.ListProductsExtended)

	r.Route("/products/{product_id}", func(r chi.Router) {
		r.Get("/", h.GetProduct)
		r.Get("/orders", h.ListProductOrders)
	})
}

// Start serves until ctx is canceled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:        s.addr,
		Handler:     s.router,
		ReadTimeout: s.timeouts.Read,
		// WriteTimeout covers the handler timeout plus encoding time
		WriteTimeout: s.timeouts.Request + s.timeouts.Read,
		IdleTimeout:  s.timeouts.Idle,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.Shutdown)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
