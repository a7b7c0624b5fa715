// Package server wires the entity handlers into one HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"

	"github.com/listacompras/listacompras/app/apperr"
	"github.com/listacompras/listacompras/app/categories"
	"github.com/listacompras/listacompras/app/lists"
	"github.com/listacompras/listacompras/app/products"
	"github.com/listacompras/listacompras/app/respond"
	"github.com/listacompras/listacompras/database"
	"github.com/listacompras/listacompras/models"
)

// maxRequestBodySize is the maximum accepted request body (1 MB).
const maxRequestBodySize = 1 << 20

type Server struct {
	db         *gorm.DB
	logger     *slog.Logger
	router     http.Handler
	categories *categories.CategoryHandler
	products   *products.ProductHandler
	lists      *lists.ListHandler
}

// New builds the repositories, services and handlers on top of db.
func New(db *gorm.DB, logger *slog.Logger) *Server {
	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)
	listsRepo := models.NewListsRepository(db)

	s := &Server{
		db:         db,
		logger:     logger,
		categories: categories.NewCategoryHandler(categories.NewService(categoriesRepo), logger),
		products:   products.NewProductHandler(products.NewService(productsRepo, categoriesRepo), logger),
		lists:      lists.NewListHandler(lists.NewService(listsRepo), logger),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(middleware.RequestSize(maxRequestBodySize))
	r.Use(middleware.StripSlashes)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, s.logger, apperr.NotFound("ruta inexistente"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, s.logger, apperr.MethodNotAllowed("metodo no permitido"))
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/categoria", s.categories.Routes)
	r.Route("/producto", s.products.Routes)
	r.Route("/lista", s.lists.Routes)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := database.Ping(r.Context(), s.db); err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err)
		respond.JSON(w, http.StatusServiceUnavailable, respond.ErrorEnvelope{Error: "base de datos no disponible"})
		return
	}
	respond.OK(w, "ok")
}

// ListenAndServe serves on addr until ctx is cancelled, then drains
// in-flight requests for up to shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
