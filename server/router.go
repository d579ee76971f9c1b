package server

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/time/rate"

	"github.com/orayew2002/rast-attendance/config"
)

func NewRouter(h *Handler, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	perUpload := rate.Every(time.Duration(float64(time.Minute) / cfg.Upload.RatePerMinute))

	r.Route("/api/v1/attendance", func(r chi.Router) {
		r.With(RateLimit(perUpload, cfg.Upload.Burst)).Post("/process", h.Process)
		r.Get("/run", h.Run)
		r.Get("/employees/{code}", h.Employee)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/detailed", h.DetailedReport)
			r.Get("/summary", h.SummaryReport)
			r.Get("/ledger.csv", h.LedgerCSV)
		})
	})

	return r
}
