package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/roster-viewer-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	Env            string
	Version        string
	AllowedOrigins []string
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

func NewRouter(opts RouterOptions, rosterHandler RosterHandler) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "roster-viewer"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.ThemeHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Theme)

		r.Route("/roster", func(r chi.Router) {
			r.Get("/", rosterHandler.GetGrid)
			r.Get("/cell", rosterHandler.GetCell)
			r.Get("/window", rosterHandler.GetWindow)
		})

		r.Route("/colors", func(r chi.Router) {
			r.Get("/contrast", rosterHandler.GetContrast)
		})
	})
	return r
}
