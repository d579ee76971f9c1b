package server

import (
	"io"
	"log/slog"

	"github.com/go-chi/httplog/v3"

	"github.com/orayew2002/rast-attendance/config"
)

// NewLogger builds the JSON request logger used by the server.
func NewLogger(w io.Writer, cfg config.AppConfig) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "development")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       cfg.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rast-attendance"),
		slog.String("env", cfg.Env),
	)
}
