package runtime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cashflow-router/internal/app/router"
	"cashflow-router/internal/pkg/cleanup"
	"cashflow-router/internal/pkg/config"
	"cashflow-router/internal/pkg/db/mongo"
	"cashflow-router/internal/pkg/db/redis"
	"cashflow-router/internal/pkg/downstream"
	"cashflow-router/internal/pkg/kafka"
	"cashflow-router/internal/pkg/log_messages"
	"cashflow-router/internal/pkg/logger"
	"cashflow-router/internal/pkg/otel"
	"cashflow-router/internal/pkg/pubsub"
	"cashflow-router/internal/pkg/store/impl/booking_logs"
	"cashflow-router/internal/pkg/store/impl/cash_flow_inputs"
	"cashflow-router/internal/pkg/store/impl/eligibility_rules"
	"cashflow-router/internal/pkg/store/impl/loan_records"
	"cashflow-router/internal/pkg/store/impl/nbfcs"
	"cashflow-router/internal/pkg/store/impl/projections"
	"cashflow-router/internal/pkg/store/repository"
	"cashflow-router/internal/pkg/utils/worker"
	"cashflow-router/internal/service/allocation"
	"cashflow-router/internal/service/capacity"
	"cashflow-router/internal/service/ledger"
	"cashflow-router/internal/service/lifecycle"
	"cashflow-router/internal/service/scheduler"
)

var (
	connectMongoDB    = mongo.ConnectToMongoDB
	connectRedisDB    = redis.ConnectToRedis
	newKafkaProducer  = kafka.NewKafkaProducer
	newPubSubConsumer = pubsub.NewPubSubConsumer
)

// App encapsulates application resources and lifecycle.
type App struct {
	Cfg            *config.AppConfig
	MongoClient    *mongo.MongoClient
	RedisClient    *redis.RedisClient
	KafkaProducer  *kafka.KafkaProducer
	AuditService   *kafka.BookingAuditService
	PubSubConsumer *pubsub.PubSubConsumer
	WorkerPool     *worker.WorkerPool
	Scheduler      *scheduler.Scheduler
	HTTPServer     *http.Server

	routerDeps    router.Dependencies
	failureNotice *lifecycle.FailureNoticeService
	otelShutdown  func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadFromConfig()
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedLoadingConfiguration, err)
		return nil, err
	}
	logger.Init(cfg.Logging.LogLevel)

	otelShutdown, err := otel.Setup(ctx, cfg.Otel.ServiceName, cfg.Otel.CollectorURL)
	if err != nil {
		logger.CtxWarn(ctx, "OTLP setup failed, continuing without traces")
	}

	mClient, err := connectMongoDB(ctx, cfg.Mongo)
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedMongoConnection, err)
		return nil, err
	}

	rClient, err := connectRedisDB(ctx, cfg.Redis)
	if err != nil {
		logger.CtxError(ctx, log_messages.FailedRedisConnection, err)
		return nil, err
	}

	kafkaProducer, err := newKafkaProducer(cfg.Kafka)
	if err != nil {
		logger.CtxError(ctx, log_messages.FailureInKafkaProducerCreation, err)
		return nil, err
	}
	auditService := kafka.NewBookingAuditService(kafkaProducer)

	pubsubConsumer, err := newPubSubConsumer(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		logger.CtxError(ctx, log_messages.FailureInPubsubConsumerCreation, err)
		return nil, err
	}

	workerPool := worker.NewWorkerPool(cfg.Allocation.WorkerPool)

	app := &App{
		Cfg:            cfg,
		MongoClient:    mClient,
		RedisClient:    rClient,
		KafkaProducer:  kafkaProducer,
		AuditService:   auditService,
		PubSubConsumer: pubsubConsumer,
		WorkerPool:     workerPool,
		otelShutdown:   otelShutdown,
	}
	app.wireServices(ctx)

	return app, nil
}

// wireServices builds the repository and service graph shared by the HTTP
// surface, the background jobs and the failure notice intake.
func (a *App) wireServices(ctx context.Context) {
	nbfcRepo := nbfcs.NewNbfcRepository(a.MongoClient)
	rulesRepo := eligibilityrules.NewEligibilityRulesRepository(a.MongoClient)
	loanRecordsRepo := loanrecords.NewLoanRecordsRepository(a.MongoClient)
	bookingLogsRepo := bookinglogs.NewBookingLogsRepository(a.MongoClient)
	cashFlowInputsRepo := cashflowinputs.NewCashFlowInputsRepository(a.MongoClient)
	projectionsRepo := projections.NewProjectionsRepository(a.MongoClient)

	if err := loanRecordsRepo.EnsureIndexes(ctx); err != nil {
		logger.CtxError(ctx, "Failed to ensure loan record indexes", err)
	}

	ledgerAdapter := repository.NewRedisLedgerAdapter(a.RedisClient.Client)
	capacityLedger := ledger.NewCapacityLedgerService(
		ledgerAdapter, a.Cfg.Ledger.SnapshotTTL, a.Cfg.Ledger.AdjustRetries)

	eligibilityService := allocation.NewEligibilityService(
		nbfcRepo, rulesRepo, cashFlowInputsRepo, a.Cfg.Allocation.BlockedNbfcs)
	allocatorService := allocation.NewAllocatorService(
		eligibilityService, capacityLedger, loanRecordsRepo, nbfcRepo)
	lifecycleService := lifecycle.NewLifecycleService(
		loanRecordsRepo, bookingLogsRepo, capacityLedger, nbfcRepo, a.AuditService)
	a.failureNotice = lifecycle.NewFailureNoticeService(lifecycleService)

	predictionClient := downstream.NewPredictionClient(a.Cfg.Prediction)
	recomputeService := capacity.NewRecomputeService(
		nbfcRepo, cashFlowInputsRepo, projectionsRepo, loanRecordsRepo,
		capacityLedger, a.WorkerPool, a.Cfg.Ledger.DefaultOldPct)
	sweeperService := capacity.NewSweeperService(loanRecordsRepo, lifecycleService, 0)
	projectionService := capacity.NewProjectionService(predictionClient, nbfcRepo, projectionsRepo)
	cashFlowService := capacity.NewCashFlowService(cashFlowInputsRepo, nbfcRepo)

	a.Scheduler = scheduler.NewScheduler(a.Cfg.Jobs, recomputeService, sweeperService, projectionService)
	a.routerDeps = router.Dependencies{
		Allocator: allocatorService,
		Lifecycle: lifecycleService,
		CashFlow:  cashFlowService,
		NbfcRepo:  nbfcRepo,
		RulesRepo: rulesRepo,
	}
}

// Run starts the failure notice consumer, the job scheduler and the HTTP
// server, then blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	go func() {
		err := a.PubSubConsumer.Consume(ctx, a.Cfg.PubSub.FailureSubscription, a.failureNotice.HandleNotice)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.CtxError(ctx, log_messages.PubsubErrorConsuming, err)
		}
	}()

	if err := a.Scheduler.Start(ctx); err != nil {
		logger.CtxError(ctx, log_messages.FailedSchedulerStart, err)
		return err
	}

	engine, err := router.SetupRouter(a.Cfg, a.routerDeps)
	if err != nil {
		return err
	}
	a.HTTPServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", a.Cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.CtxError(ctx, log_messages.ServerStartFailure, err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.Shutdown(ctx)
	logger.CtxInfo(ctx, log_messages.ServerExiting)
	return nil
}

// Shutdown gracefully closes all resources with bounded timeouts.
func (a *App) Shutdown(ctx context.Context) {
	logger.CtxInfo(ctx, log_messages.ServerShutdown)

	a.WorkerPool.Stop()
	cleanup.CleanupResources(ctx,
		a.PubSubConsumer,
		a.AuditService,
		a.Scheduler,
		a.MongoClient,
		a.RedisClient,
		a.HTTPServer,
	)
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			logger.CtxError(ctx, "Failed to shutdown OTLP exporter", err)
		}
	}
}
