package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/handler/http/middleware"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Assistant  AssistantHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	// Metrics is mounted at MetricsPath when set.
	Metrics     http.Handler
	MetricsPath string
}

func NewRouter(logger *slog.Logger, JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Metrics != nil {
		r.Method(http.MethodGet, opts.MetricsPath, opts.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/home", h.Auth.Home)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/myaccount", h.Employee.GetMyProfile)
				r.Put("/myaccount", h.Employee.UpdateMyProfile)
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHRAdmin)
					r.Put("/{id}", h.Employee.Update)
					r.Put("/{id}/terminate", h.Employee.Terminate)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my-attendance", h.Attendance.ListMine)

				r.With(middleware.RequireManager).Get("/department-attendance", h.Attendance.ListDepartment)

				// HR admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHRAdmin)
					r.Get("/all-attendance", h.Attendance.ListAll)
					r.Get("/employee/{id}/attendance", h.Attendance.ListEmployee)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/request", h.Leave.CreateRequest)
				r.Get("/my-requests", h.Leave.ListMyRequests)
				r.Get("/pending", h.Leave.ListPending)
				r.Put("/{id}/approve", h.Leave.Approve)
				r.Put("/{id}/reject", h.Leave.Reject)
				r.Get("/balance", h.Leave.GetBalance)
			})

			r.Route("/assistant", func(r chi.Router) {
				r.Use(middleware.RequireHRAdmin)
				r.Post("/query", h.Assistant.Query)
			})
		})
	})
	return r
}
