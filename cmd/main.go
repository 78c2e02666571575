package main

import (
	"fmt"
	"os"

	"github.com/palsulearavapsit/SPACESCOPE/internal/cache"
	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/db"
	"github.com/palsulearavapsit/SPACESCOPE/internal/handlers"
	"github.com/palsulearavapsit/SPACESCOPE/internal/ingest"
	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/repos"
	"github.com/palsulearavapsit/SPACESCOPE/internal/scheduler"
	"github.com/palsulearavapsit/SPACESCOPE/internal/server"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Error("Could not load configuration", "error", err)
		os.Exit(1)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Cache: redis when configured, in-process otherwise.
	var payloadCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(log, cfg.RedisAddr)
		if err != nil {
			log.Warn("Redis init failed, using in-process cache", "error", err)
			payloadCache = cache.NewMemory()
		} else {
			payloadCache = redisCache
		}
	} else {
		payloadCache = cache.NewMemory()
	}

	// Repos
	log.Info("Setting up Repos from main...")
	recordRepo := repos.NewRecordRepo(thePG, log)
	ingestionRunRepo := repos.NewIngestionRunRepo(thePG, log)

	// Fetch client and ingestion service
	log.Info("Setting up Services from main...")
	client := nasa.NewClient(log, payloadCache, cfg)
	ingestService := ingest.NewService(client, recordRepo, ingestionRunRepo, log, cfg, client.TotalBudget())

	// Scheduler
	sched := scheduler.New(ingestService, log)
	if err := sched.Start(); err != nil {
		log.Error("Could not start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// Handlers + router
	ingestHandler := handlers.NewIngestHandler(ingestService, ingestionRunRepo)
	recordsHandler := handlers.NewRecordsHandler(recordRepo)
	router := server.NewRouter(server.RouterConfig{
		IngestHandler:  ingestHandler,
		RecordsHandler: recordsHandler,
	})

	addr := ":" + cfg.ServerPort
	log.Info("Starting server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
