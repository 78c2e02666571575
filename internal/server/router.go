package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/palsulearavapsit/SPACESCOPE/internal/handlers"
)

type RouterConfig struct {
	IngestHandler  *handlers.IngestHandler
	RecordsHandler *handlers.RecordsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Ingestion
		api.POST("/ingest", cfg.IngestHandler.TriggerAll)
		api.POST("/ingest/:kind", cfg.IngestHandler.TriggerKind)
		api.GET("/ingest/batches/:id", cfg.IngestHandler.GetBatch)
		api.GET("/ingest/runs", cfg.IngestHandler.ListRuns)
		api.GET("/ingest/runs/:id", cfg.IngestHandler.GetRun)
		// Records
		api.GET("/records/:kind", cfg.RecordsHandler.ListByKind)
		api.GET("/records/:kind/count", cfg.RecordsHandler.CountByKind)
	}

	return router
}
