package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ledger-core/internal/api/handlers"
	"ledger-core/internal/api/middlew"
	"ledger-core/internal/config"
	"ledger-core/internal/kafka"
	"ledger-core/internal/server"
	"ledger-core/internal/service"
	"ledger-core/internal/storage/memory"
	"ledger-core/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type App struct {
	log             *slog.Logger
	logs            *logger.LoggerWithFile
	server          *server.Server
	cfg             *config.Config
	repo            memory.AccountRepository
	kafkaProducer   kafka.Producer
	dispatcher      *service.EventDispatcher
	accountService  service.Accounts
	transferService service.Transfers
}

func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("config init error: %w", err)
	}
	return NewAppWithConfig(cfg)
}

func NewAppWithConfig(cfg *config.Config) (*App, error) {
	logs, err := logger.NewLoggerWithFile(cfg.Log.File, cfg.Log.SlogLevel())
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	log := logs.Logger
	log.Info("initializing application",
		slog.String("port", cfg.HTTPPort),
		slog.String("log_level", cfg.Log.SlogLevel().String()))

	var kafkaProducer kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("initializing kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			_ = logs.Close()
			return nil, fmt.Errorf("kafka init error: %w", err)
		}
	} else {
		log.Info("kafka disabled in configuration")
		kafkaProducer = kafka.NewNoOpProducer(log)
	}

	dispatcher := service.NewEventDispatcher(kafkaProducer, cfg.Events.Workers, cfg.Events.QueueSize, log)

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("server initialized", slog.String("port", cfg.HTTPPort))
	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middlew.RequestLogger)
	srv.Router.Use(middleware.Recoverer)
	srv.Router.Get("/health", handlers.Health)
	srv.RegisterSwagger()

	return &App{
		log:           log,
		logs:          logs,
		server:        srv,
		cfg:           cfg,
		repo:          memory.NewAccountRepository(),
		kafkaProducer: kafkaProducer,
		dispatcher:    dispatcher,
	}, nil
}

func (a *App) BuildLedgerLayer() error {
	if a.repo == nil || a.dispatcher == nil {
		err := errors.New("app not initialized, use NewApp")
		a.log.Error(err.Error())
		return err
	}

	a.accountService = service.NewAccountService(a.repo, a.dispatcher, a.log)
	a.transferService = service.NewTransferService(a.repo, a.dispatcher, a.log)

	accountHandler := handlers.NewAccountHandler(a.accountService)
	transferHandler := handlers.NewTransferHandler(a.transferService)

	a.server.Router.Route("/api/v1", func(r chi.Router) {
		r.Post("/account", accountHandler.CreateAccount)
		r.Get("/account/{id}", accountHandler.GetAccount)
		r.Post("/transfer", transferHandler.Transfer)
	})

	a.log.Info("ledger layer built and routes registered")
	return nil
}

// Handler exposes the router so the app can be served by something other than Run.
func (a *App) Handler() http.Handler {
	return a.server.Router
}

func (a *App) Run() error {
	a.log.Info("server starting", slog.String("addr", a.server.Addr()))

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server start error: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownChan)

	select {
	case err := <-serverErr:
		a.Shutdown(context.Background())
		return err
	case sig := <-shutdownChan:
		a.log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.Shutdown(ctx)
	return nil
}

// Shutdown stops intake first, then drains queued events, then closes the producer
// and the log file.
func (a *App) Shutdown(ctx context.Context) {
	a.log.Info("application stopping")

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.dispatcher.Shutdown(ctx); err != nil {
		a.log.Error("event dispatcher shutdown error", slog.String("error", err.Error()))
	}

	a.log.Info("closing kafka producer")
	if err := a.kafkaProducer.Close(); err != nil {
		a.log.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	a.log.Info("application stopped",
		slog.Int("accounts", a.repo.Count(ctx)),
		slog.String("total_balance", a.repo.TotalBalance(ctx).String()))

	if err := a.logs.Close(); err != nil {
		a.log.Error("log file close error", slog.String("error", err.Error()))
	}
}
