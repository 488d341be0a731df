// Package cmd assembles the application: configuration, logging, the
// selected store, the services and the HTTP server.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"biblio/api"
	bookctl "biblio/api/book"
	circulationctl "biblio/api/circulation"
	"biblio/api/health"
	memberctl "biblio/api/member"
	reportctl "biblio/api/report"
	bookapp "biblio/application/book"
	circulationapp "biblio/application/circulation"
	memberapp "biblio/application/member"
	reportapp "biblio/application/report"
	"biblio/config"
	"biblio/domain/book"
	"biblio/domain/loan"
	"biblio/domain/member"
	"biblio/domain/shared"
	"biblio/infrastructure/persistence/memory"
	"biblio/infrastructure/persistence/mysql"
	"biblio/pkg/logger"

	"go.uber.org/zap"
)

// App is the assembled application.
type App struct {
	cfg    *config.Config
	router *api.Router
	server *http.Server
}

// stores groups one backend's repositories and unit of work.
type stores struct {
	members member.Repository
	books   book.Repository
	loans   loan.Repository
	uow     shared.UnitOfWork
}

// NewApp loads configuration, initializes logging and wires every
// layer together.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	st, err := buildStores(cfg)
	if err != nil {
		return nil, err
	}

	policy := circulationapp.PolicyFromConfig(cfg.Circulation)

	memberService := memberapp.NewService(st.members, st.loans, st.uow)
	bookService := bookapp.NewService(st.books, st.uow)
	circulationService := circulationapp.NewService(st.books, st.loans, st.uow, policy)
	reportService := reportapp.NewService(st.books, st.loans)

	router := api.NewRouter(
		cfg,
		health.NewController(cfg),
		memberctl.NewController(memberService),
		bookctl.NewController(bookService),
		circulationctl.NewController(circulationService),
		reportctl.NewController(reportService),
	)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{cfg: cfg, router: router, server: server}, nil
}

// buildStores selects the persistence backend from configuration.
func buildStores(cfg *config.Config) (*stores, error) {
	switch cfg.Database.Type {
	case "mysql":
		opts := mysql.OptionsFromConfig(cfg.Database)
		db, err := opts.Connect()
		if err != nil {
			return nil, err
		}
		if err := mysql.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &stores{
			members: mysql.NewMemberRepository(db),
			books:   mysql.NewBookRepository(db),
			loans:   mysql.NewLoanRepository(db),
			uow:     mysql.NewUnitOfWork(db),
		}, nil
	case "memory", "":
		logger.Info("Using in-memory persistence")
		books := memory.NewBookRepository()
		return &stores{
			members: memory.NewMemberRepository(),
			books:   books,
			loans:   memory.NewLoanRepository(books),
			uow:     memory.NewUnitOfWork(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown database type: %q", cfg.Database.Type)
	}
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully
// within the configured timeout.
func (a *App) Run() error {
	defer logger.Sync()

	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("env", a.cfg.App.Env),
			zap.String("database", a.cfg.Database.Type))

		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}
