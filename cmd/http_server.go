package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
	authpg "github.com/dfquintero/plan-seguimiento/internal/auth/postgres"
	"github.com/dfquintero/plan-seguimiento/internal/files"
	"github.com/dfquintero/plan-seguimiento/internal/habilidad"
	habilidadpg "github.com/dfquintero/plan-seguimiento/internal/habilidad/postgres"
	"github.com/dfquintero/plan-seguimiento/internal/plan"
	planpg "github.com/dfquintero/plan-seguimiento/internal/plan/postgres"
	"github.com/dfquintero/plan-seguimiento/internal/pqrd"
	pqrdpg "github.com/dfquintero/plan-seguimiento/internal/pqrd/postgres"
	"github.com/dfquintero/plan-seguimiento/internal/reporte"
	reportepg "github.com/dfquintero/plan-seguimiento/internal/reporte/postgres"
	"github.com/dfquintero/plan-seguimiento/internal/transport/rest"
	"github.com/dfquintero/plan-seguimiento/internal/user"
	userpg "github.com/dfquintero/plan-seguimiento/internal/user/postgres"
	"github.com/dfquintero/plan-seguimiento/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config

	authRepo := authpg.NewAuthRepository(deps.Gorm)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenExpireHours)
	authService := auth.NewService(authRepo, tokens, cfg.Security.BCryptCost, cfg.Security.DisableAuth, deps.Logger)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userpg.NewUserRepository(deps.Gorm), authService, deps.Logger)
	planService := plan.NewService(planpg.NewPlanRepository(deps.Gorm), deps.Logger)
	reporteService := reporte.NewService(reportepg.NewReporteRepository(deps.Gorm), deps.Logger)
	pqrdService := pqrd.NewService(pqrdpg.NewPqrdRepository(deps.Gorm), deps.Logger)
	habilidadService := habilidad.NewService(habilidadpg.NewHabilidadRepository(deps.Gorm), deps.Logger)

	store, err := newBlobStore(cfg.Uploads)
	if err != nil {
		return err
	}

	handlers := rest.Handlers{
		Auth:      authHandler,
		User:      user.NewHandler(userService),
		Plan:      plan.NewHandler(planService),
		Reporte:   reporte.NewHandler(reporteService),
		Pqrd:      pqrd.NewHandler(pqrdService),
		Habilidad: habilidad.NewHandler(habilidadService),
		Files:     files.NewHandler(store, cfg.Uploads),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, cfg, handlers, deps.Logger)
	return nil
}

func newBlobStore(cfg internal.UploadConfig) (files.BlobStore, error) {
	if cfg.GCSBucket != "" {
		return files.NewGCSStore(context.Background(), cfg.GCSBucket, cfg.GCSPrefix)
	}
	return files.NewDiskStore(cfg.Dir, cfg.EvidenceSub)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment)

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the database once through database/sql and hands the same
// connection to GORM, so health checks and the ORM share one pool.
// A postgres:// DSN selects pgx; anything else is a SQLite file for local
// development.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	driver := "sqlite3"
	if cfg.IsPostgres() {
		driver = "pgx"
	}

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	var dialector gorm.Dialector
	if cfg.IsPostgres() {
		dialector = postgres.New(postgres.Config{Conn: dbConn.DB})
	} else {
		dialector = sqlite.Dialector{Conn: dbConn.DB}
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	return dbConn, gormDB, nil
}
