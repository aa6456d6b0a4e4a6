// Package main runs the tracker MCP server over stdio (for local agent use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP.
package main

import (
	"context"
	"flag"
	"net"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/chihironakai0517/workout-tracker/internal/config"
	"github.com/chihironakai0517/workout-tracker/internal/datasync"
	"github.com/chihironakai0517/workout-tracker/internal/db"
	"github.com/chihironakai0517/workout-tracker/internal/health"
	trackermcp "github.com/chihironakai0517/workout-tracker/internal/mcp"
	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/summary"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout carries the MCP stream
	log.SetOutput(os.Stderr)
	_ = godotenv.Load()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()

	var kv store.KV
	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:     cfg.PostgresHost,
			DBPort:     cfg.PostgresPort,
			DBName:     cfg.PostgresDBName,
			DBPassword: os.Getenv("TRACKER_POSTGRES_PASS"),
		})
		if err != nil {
			log.Fatalf("db pool: %s", err)
		}
		defer dbPool.Close()
		kv = store.NewPostgresStore(dbPool)
	case config.StorageBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: os.Getenv("TRACKER_REDIS_PASS"),
		})
		defer func() { _ = rdb.Close() }()
		kv = store.NewRedisStore(rdb, store.DefaultRedisKeyPrefix)
	default:
		log.Fatalf("storage backend [%s] is not shared with the backend process", cfg.StorageBackend)
	}

	measurementsRepo := health.NewMeasurementsRepo(kv)
	nutritionRepo := health.NewNutritionRepo(kv)
	goalsRepo := health.NewGoalsRepo(kv)
	workoutsRepo := workouts.NewRepo(kv, measurementsRepo, cfg.DefaultBodyWeight)

	server := trackermcp.NewServer(trackermcp.Sources{
		Workouts:     workoutsRepo,
		Measurements: measurementsRepo,
		Summaries:    summary.NewService(measurementsRepo, nutritionRepo, goalsRepo, workoutsRepo),
		Sync: datasync.NewService(
			workoutsRepo,
			workouts.NewPresetsRepo(kv),
			measurementsRepo,
			nutritionRepo,
			goalsRepo,
			metrics.NewManager("tracker", "mcp", prometheus.NewRegistry()),
		),
	})

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
