package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kpimanager/kpi-backend-go/internal/config"
	"github.com/kpimanager/kpi-backend-go/internal/handler/http/middleware"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	scorecardHandler ScorecardHandler,
	catalogHandler CatalogHandler,
	masterHandler MasterHandler,
	personnelHandler PersonnelHandler,
	orgChartHandler OrgChartHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kpi-manager"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/login/oauth", func(r chi.Router) {
				r.Get("/google", authHandler.LoginWithGoogle)
			})
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/scorecard", func(r chi.Router) {
				r.Get("/", scorecardHandler.Get)
				r.Post("/", scorecardHandler.Submit)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/close", scorecardHandler.ClosePeriod)
				})
			})

			r.Route("/kpis", func(r chi.Router) {
				r.Get("/", catalogHandler.SearchKpis)
				r.Get("/refs", catalogHandler.ListKpiRefs)
				r.Get("/{kpiID}", catalogHandler.GetKpi)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", catalogHandler.CreateKpi)
					r.Put("/{kpiID}", catalogHandler.UpdateKpi)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", catalogHandler.ListDepartments)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", catalogHandler.CreateDepartment)
				})
			})

			r.Route("/positions", func(r chi.Router) {
				r.Get("/", masterHandler.ListPositions)
				r.Get("/assignments", masterHandler.ListAssignments)
				r.Get("/{positionID}", masterHandler.GetPosition)
				r.Get("/{positionID}/kpis", masterHandler.GetAssignedKpis)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreatePosition)
					r.Put("/{positionID}", masterHandler.UpdatePosition)
					r.Put("/{positionID}/kpis", masterHandler.AssignKpis)
				})
			})

			// Admin only
			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", personnelHandler.ListEmployees)
				r.Post("/", personnelHandler.CreateEmployee)
				r.Post("/import", personnelHandler.Import)
				r.Get("/{employeeID}", personnelHandler.GetEmployee)
				r.Put("/{employeeID}", personnelHandler.UpdateEmployee)
			})

			r.Route("/orgchart", func(r chi.Router) {
				r.Get("/", orgChartHandler.GetChart)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/move", orgChartHandler.MoveEmployee)
				})
			})
		})
	})
	return r
}
