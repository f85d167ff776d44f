package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-core-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type RouterConfig struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// JWTSecret enables bearer verification on /api/v1 when set.
	JWTSecret string
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

type Handlers struct {
	WorkType   WorkTypeHandler
	WorkItem   WorkItemHandler
	WorkRecord WorkRecordHandler
	Salary     SalaryHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	if cfg.Logger != nil {
		r.Use(httplog.RequestLogger(cfg.Logger, &httplog.Options{
			Level:  cfg.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			tokenAuth := jwtauth.New("HS256", []byte(cfg.JWTSecret), nil, jwt.WithAcceptableSkew(30*time.Second))
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))
		}

		r.Route("/work-types", func(r chi.Router) {
			r.Get("/", h.WorkType.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.WorkType.GetByID)
				r.Get("/overtime-config", h.WorkType.GetOvertimeConfig)
				r.Put("/overtime-config", h.WorkType.UpsertOvertimeConfig)
			})
		})

		r.Route("/work-items/{id}", func(r chi.Router) {
			r.Get("/", h.WorkItem.GetByID)
			r.Get("/remaining", h.WorkItem.GetRemainingQuota)
		})

		r.Route("/work-records", func(r chi.Router) {
			r.Post("/", h.WorkRecord.Create)
			r.Get("/", h.WorkRecord.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.WorkRecord.GetByID)
				r.Put("/", h.WorkRecord.Update)
				r.Delete("/", h.WorkRecord.Delete)
			})
		})

		r.Route("/salaries", func(r chi.Router) {
			r.Post("/calculate", h.Salary.Calculate)
			r.Post("/calculate-range", h.Salary.CalculateRange)
			r.Get("/", h.Salary.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Salary.GetByID)
				r.Delete("/", h.Salary.Delete)
				r.Put("/allowances", h.Salary.UpdateAllowances)
				r.Put("/advance-payment", h.Salary.UpdateAdvancePayment)
				r.Post("/pay", h.Salary.Pay)
			})
		})
	})

	return r
}

// NewLogger builds the ECS-formatted JSON logger used for request logs.
func NewLogger(app, version, env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", app),
		slog.String("version", version),
		slog.String("env", env),
	)
}
