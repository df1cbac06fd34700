package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catering-service/config"
	"catering-service/internal/api"
	"catering-service/internal/broker"
	"catering-service/internal/redisclient"
	"catering-service/internal/schedule"
	"catering-service/internal/service"
	"catering-service/internal/store"
	"catering-service/internal/util"
	"catering-service/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting catering service")

	tp, err := util.InitTracer("catering-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	rules, err := cfg.Business.ScheduleRules()
	if err != nil {
		logger.Fatal("Invalid business configuration", zap.Error(err))
	}
	validator := schedule.NewValidator(rules)

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CartTTL, cfg.Redis.CatalogTTL)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	logger.Info("Kafka producer initialized", zap.Strings("brokers", cfg.Kafka.Brokers))

	eventPublisher := broker.NewEventPublisher(producer)

	services := api.Services{
		Catalog: service.NewCatalogService(db, redisClient),
		Carts:   service.NewCartService(db, redisClient),
		Orders: service.NewOrderService(db, redisClient, redisClient, eventPublisher, validator, service.OrderOptions{
			DeliveryFee: cfg.Business.DeliveryFee,
			LockTTL:     cfg.Business.SubmissionLockTTL,
		}),
		Bookings: service.NewBookingService(db, eventPublisher, validator, nil),
		Statuses: service.NewStatusService(db, eventPublisher, nil),
		Ledger: service.NewLedgerService(db, db, eventPublisher, service.LedgerOptions{
			Location:       validator.Location(),
			DepositPercent: cfg.Business.DepositPercent,
		}),
	}

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	historyConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	historyWorker := worker.NewHistoryWorker(historyConsumer, db)
	go func() {
		if err := historyWorker.Start(workerCtx); err != nil {
			logger.Error("History worker error", zap.Error(err))
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(services, validator, map[string]api.Pinger{
		"postgres": db,
		"redis":    redisClient,
	})
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	workerCancel()
	if err := historyWorker.Stop(); err != nil {
		logger.Error("Failed to stop history worker", zap.Error(err))
	}

	logger.Info("Server exited")
}
