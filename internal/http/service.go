package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/ihirwe/stockroom/internal/config"
	"github.com/ihirwe/stockroom/internal/http/metric"
	"github.com/ihirwe/stockroom/internal/http/middleware"
	"github.com/ihirwe/stockroom/internal/inventory"
	"github.com/ihirwe/stockroom/internal/model"
	"github.com/ihirwe/stockroom/internal/storage/db"
)

var tracer = otel.Tracer("internal/http")

// InventoryService is the surface of the inventory state manager the API
// exposes.
type InventoryService interface {
	Fetch(ctx context.Context) error
	AddProduct(ctx context.Context, params inventory.ProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	History(ctx context.Context) ([]model.HistoryEntry, error)
	Products() []model.Product
	Categories() []string
	Loading() bool
	Stats() inventory.Stats
	ExportCSV() []byte
}

var _ InventoryService = (*inventory.Manager)(nil)

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	inventorySvc InventoryService
	health       db.HealthChecker
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	inventorySvc InventoryService,
	health db.HealthChecker,
	reg prometheus.Registerer,
) *Service {
	return &Service{
		cfg:          cfg,
		logger:       log.With(slog.String("service", "http")),
		metrics:      metric.New(reg),
		inventorySvc: inventorySvc,
		health:       health,
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)
	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	products := newProductHandler(s, s.inventorySvc)
	categories := newCategoryHandler(s, s.inventorySvc)
	history := newHistoryHandler(s, s.inventorySvc)
	dashboard := newDashboardHandler(s, s.inventorySvc)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", products.list)
		r.Post("/products", products.create)
		r.Post("/products/refresh", products.refresh)
		r.Get("/products/export", products.export)
		r.Put("/products/{id}", products.update)
		r.Delete("/products/{id}", products.delete)

		r.Get("/categories", categories.list)
		r.Post("/categories", categories.create)
		r.Delete("/categories/{name}", categories.delete)

		r.Get("/history", history.list)
		r.Get("/stats", dashboard.stats)
	})

	r.Get("/healthz", s.handleHealth)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if ok, err := s.health.IsHealthy(r.Context()); !ok {
			s.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
			s.respondJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}

	s.respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
