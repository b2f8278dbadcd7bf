package router

import (
	"io"
	"log/slog"
	"net/http"

	mem "wildlife-sightings/internal/adapters/storage/memory"
	"wildlife-sightings/internal/domain/animals"
	"wildlife-sightings/internal/domain/sightings"
	"wildlife-sightings/internal/middleware"
	"wildlife-sightings/internal/platform/metrics"

	_ "wildlife-sightings/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger  *slog.Logger     // nil = descarta logs
	Metrics *metrics.Metrics // nil = sin /metrics

	// Opcionales: si no vienen, in-memory.
	Animals   animals.Repository
	Sightings sightings.Repository

	LegacyUpdateStatus bool
	Docs               bool
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log, opts.Metrics))
	r.Use(middleware.Recover)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.Docs {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	animalRepo, sightingRepo := opts.Animals, opts.Sightings
	if animalRepo == nil || sightingRepo == nil {
		// comparten store para que FK y cascada funcionen
		st := mem.NewStore()
		animalRepo = st.Animals()
		sightingRepo = st.Sightings()
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo, sightingRepo)
	sightingsSvc := sightings.NewService(sightingRepo, animalsSvc)

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, opts.Metrics)
	sightings.RegisterRoutes(r, sightingsSvc, sightings.HandlerOptions{
		Metrics:            opts.Metrics,
		LegacyUpdateStatus: opts.LegacyUpdateStatus,
	})

	return r
}
