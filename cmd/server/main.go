package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/ssrfm/indent-service/internal/application/dispatcher"
	"github.com/ssrfm/indent-service/internal/application/service"
	"github.com/ssrfm/indent-service/internal/config"
	"github.com/ssrfm/indent-service/internal/domain/event"
	"github.com/ssrfm/indent-service/internal/infrastructure/persistence/repository"
	httpserver "github.com/ssrfm/indent-service/internal/interfaces/http"
	"github.com/ssrfm/indent-service/internal/report"
	"github.com/ssrfm/indent-service/internal/worker"
	"github.com/ssrfm/indent-service/migrations"
	"github.com/ssrfm/indent-service/pkg/database"
	"github.com/ssrfm/indent-service/pkg/utils"
)

func main() {
	// Load .env if present so local overrides reach viper's env binding
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting indent service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(migrations.FS); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		logger.Fatal("Failed to create report output directory", zap.Error(err))
	}

	requisitionRepo := repository.NewRequisitionRepository(db.DB, logger)
	itemRepo := repository.NewItemRepository(db.DB, logger)
	quotationRepo := repository.NewQuotationRepository(db.DB, logger)
	historyRepo := repository.NewHistoryRepository(db.DB, logger)
	txManager := repository.NewTxManager(db.DB, logger)

	serviceLogger := utils.NewSugarAdapter(logger)

	events := dispatcher.New(serviceLogger)
	defer events.Close()

	indentService := service.NewIndentService(
		requisitionRepo,
		itemRepo,
		quotationRepo,
		historyRepo,
		txManager,
		events,
		serviceLogger,
	)

	transitionService := service.NewTransitionService(
		indentService,
		requisitionRepo,
		itemRepo,
		historyRepo,
		txManager,
		events,
		serviceLogger,
	)

	orderWriter := report.NewPurchaseOrderWriter(cfg.Report.OutputDir, cfg.Report.CompanyName, logger)

	// Approval side effect: write the purchase-order sheet as soon as the
	// approver signs off, so the stores team can place the order.
	events.Subscribe(event.TypeRequisitionApproved, "order-sheet-writer", func(ctx context.Context, evt *event.Event) error {
		req, err := indentService.GetByID(ctx, evt.RequisitionID)
		if err != nil {
			return err
		}
		path, err := orderWriter.Generate(ctx, req)
		if err != nil {
			return err
		}
		events.DispatchAsync(ctx, event.NewWithCorrelation(
			event.TypeOrderSheetWritten, req.ID, req.IndentNo,
			map[string]interface{}{"path": path}, evt.CorrelationID))
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var workers []worker.Worker
	if cfg.Poller.Enabled {
		workers = append(workers, worker.NewPendingPoller(
			requisitionRepo,
			cfg.Poller.Interval,
			cfg.Poller.PendingAfter,
			logger,
		))
	}
	workerManager := worker.NewManager(logger, workers...)
	if err := workerManager.StartAll(ctx); err != nil {
		logger.Fatal("Failed to start background workers", zap.Error(err))
	}
	defer workerManager.StopAll()

	srv := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			CORSOrigins:  cfg.Server.CORSOrigins,
		},
		indentService,
		transitionService,
		orderWriter,
		serviceLogger,
	)

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
