package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"agendly/config"
	"agendly/cron"
	"agendly/database"
	schedulingRepo "agendly/database/repository/scheduling"
	"agendly/handlers"
	"agendly/middleware"
	"agendly/routes"
	"agendly/services/scheduling"
	"agendly/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repository with a redis read-through cache on the hot-path documents.
	cache := schedulingRepo.NewRepoCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.CacheTTL)*time.Second,
	)
	repo := schedulingRepo.NewMongoSchedulingRepo(cache)
	if mongoRepo, ok := repo.(*schedulingRepo.MongoSchedulingRepo); ok {
		if err := mongoRepo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// Worker lock shared through redis so every node serializes on the same key.
	locker := utils.NewRedisWorkerLock(
		utils.GetLockClient(),
		time.Duration(config.AppConfig.LockOwnershipTTL)*time.Second,
		time.Duration(config.AppConfig.LockAcquireDeadline)*time.Second,
	)

	reminders := cron.NewAsynqReminderScheduler()
	defer reminders.Close()
	cron.InitReminderWorker()

	engine := &scheduling.Engine{
		Repo:      repo,
		Locker:    locker,
		Reminders: reminders,
		LeadIn:    time.Duration(config.AppConfig.SlotLeadInMinutes) * time.Minute,
	}

	schedulingHandler := handlers.NewSchedulingHandler(engine, logger)
	managementHandler := handlers.NewManagementHandler(engine, repo, logger)
	routes.RegisterRoutes(router, schedulingHandler, managementHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
