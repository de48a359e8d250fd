package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/middleware"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AppName        string
	Version        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// RateLimit wraps the salary routes. Nil disables limiting.
	RateLimit func(http.Handler) http.Handler
}

type Handlers struct {
	Payroll     PayrollHandler
	DailyReport DailyReportHandler
	Employee    EmployeeHandler
	Master      MasterHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Route("/salary", func(r chi.Router) {
			if opts.RateLimit != nil {
				r.Use(opts.RateLimit)
			}

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAnyPermission(user.PermissionSalaryViewOwn, user.PermissionSalaryViewAll))
				r.Get("/{employeeId}", h.Payroll.GetBreakdown)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionSalaryExport))
				r.Get("/{employeeId}/export", h.Payroll.ExportBreakdown)
				r.Post("/batch/export", h.Payroll.ExportBatch)
			})

			r.With(middleware.RequirePermission(user.PermissionSalaryViewAll)).
				Post("/batch", h.Payroll.CalculateBatch)
		})

		r.Route("/daily-reports", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionReportManage)).
				Post("/", h.DailyReport.Create)

			r.Route("/{employeeId}", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAnyPermission(user.PermissionReportViewOwn, user.PermissionReportViewAll))
					r.Get("/", h.DailyReport.List)
					r.Get("/{date}", h.DailyReport.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportManage))
					r.Patch("/{date}", h.DailyReport.Update)
					r.Delete("/{date}", h.DailyReport.Delete)
				})
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Employee.List)
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Employee.Get)
			r.With(middleware.RequirePermission(user.PermissionMasterManage)).Put("/{id}", h.Employee.Upsert)
		})

		r.Route("/pay-scales", func(r chi.Router) {
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/", h.Master.ListPayScales)
			r.With(middleware.RequirePermission(user.PermissionMasterView)).Get("/{id}", h.Master.GetPayScale)
			r.With(middleware.RequirePermission(user.PermissionMasterManage)).Put("/{id}", h.Master.UpsertPayScale)
		})
	})
	return r
}
