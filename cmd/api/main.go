package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kpimanager/kpi-backend-go/internal/config"
	"github.com/kpimanager/kpi-backend-go/internal/domain/employee"
	appHTTP "github.com/kpimanager/kpi-backend-go/internal/handler/http"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/database"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/jwt"
	"github.com/kpimanager/kpi-backend-go/internal/pkg/oauth"
	"github.com/kpimanager/kpi-backend-go/internal/repository/incidencias"
	"github.com/kpimanager/kpi-backend-go/internal/repository/postgresql"
	authService "github.com/kpimanager/kpi-backend-go/internal/service/auth"
	catalogService "github.com/kpimanager/kpi-backend-go/internal/service/catalog"
	masterService "github.com/kpimanager/kpi-backend-go/internal/service/master"
	orgchartService "github.com/kpimanager/kpi-backend-go/internal/service/orgchart"
	personnelService "github.com/kpimanager/kpi-backend-go/internal/service/personnel"
	scorecardService "github.com/kpimanager/kpi-backend-go/internal/service/scorecard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// The incidencias database is read-only and optional; without it the
	// import endpoint returns an empty report.
	var importSource employee.ImportSource
	if cfg.IncidenciasConfigured() {
		incDB, err := database.NewPostgreSQLDB(cfg.IncidenciasURL())
		if err != nil {
			fmt.Println("Error connecting to incidencias database:", err)
			return
		}
		importSource = incidencias.NewPersonnelSource(incDB)
	}

	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	kpiRepo := postgresql.NewKpiRepository(db)
	assignmentRepo := postgresql.NewKpiAssignmentRepository(db)
	resultRepo := postgresql.NewKpiResultRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	var googleService oauth.GoogleService
	if cfg.GoogleConfigured() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	authSvc := authService.NewAuthService(userRepo, employeeRepo, JWTService, googleService)
	scorecardSvc := scorecardService.NewScorecardService(db, employeeRepo, positionRepo, kpiRepo, resultRepo)
	catalogSvc := catalogService.NewCatalogService(kpiRepo, departmentRepo)
	masterSvc := masterService.NewMasterService(db, positionRepo, kpiRepo, assignmentRepo)
	personnelSvc := personnelService.NewPersonnelService(db, employeeRepo, positionRepo, departmentRepo, importSource, slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	orgchartSvc := orgchartService.NewOrgChartService(db, employeeRepo, positionRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	scorecardHandler := appHTTP.NewScorecardHandler(scorecardSvc)
	catalogHandler := appHTTP.NewCatalogHandler(catalogSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)
	personnelHandler := appHTTP.NewPersonnelHandler(personnelSvc)
	orgChartHandler := appHTTP.NewOrgChartHandler(orgchartSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		scorecardHandler,
		catalogHandler,
		masterHandler,
		personnelHandler,
		orgChartHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
