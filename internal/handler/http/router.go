package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions carries the values the router reads from configuration
type RouterOptions struct {
	Env         string
	Version     string
	FrontendURL string
	LogLevel    slog.Level
}

func NewRouter(
	opts RouterOptions,
	presenceHandler PresenceHandler,
	dashboardHandler DashboardHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-cmlabs"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
		// The stream stays open for as long as the view does
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/presence/stream"
		},
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/presence", func(r chi.Router) {
			r.Get("/", presenceHandler.GetStatus)
			r.Post("/activate", presenceHandler.Activate)
			r.Put("/location-type", presenceHandler.SelectLocationType)
			r.Route("/location", func(r chi.Router) {
				r.Post("/request", presenceHandler.RequestLocation)
				r.Post("/resolve", presenceHandler.ResolveLocation)
			})
			r.Post("/check-in", presenceHandler.CheckIn)
			r.Post("/check-out", presenceHandler.CheckOut)
			r.Get("/stream", presenceHandler.Stream)
		})

		r.Get("/dashboard", dashboardHandler.GetDashboard)

		r.Route("/attendances", func(r chi.Router) {
			r.Get("/", attendanceHandler.List)
			r.Post("/absence", attendanceHandler.RecordAbsence)
		})

		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", leaveHandler.List)
			r.Post("/", leaveHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", leaveHandler.Get)
				r.Post("/approve", leaveHandler.Approve)
				r.Post("/reject", leaveHandler.Reject)
			})
		})
	})
	return r
}
