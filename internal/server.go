package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/chihironakai0517/workout-tracker/internal/auth"
	"github.com/chihironakai0517/workout-tracker/internal/config"
	"github.com/chihironakai0517/workout-tracker/internal/datasync"
	"github.com/chihironakai0517/workout-tracker/internal/db"
	"github.com/chihironakai0517/workout-tracker/internal/health"
	trackermcp "github.com/chihironakai0517/workout-tracker/internal/mcp"
	"github.com/chihironakai0517/workout-tracker/internal/middleware"
	"github.com/chihironakai0517/workout-tracker/internal/misc"
	"github.com/chihironakai0517/workout-tracker/internal/store"
	"github.com/chihironakai0517/workout-tracker/internal/summary"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/metrics"
	"github.com/chihironakai0517/workout-tracker/internal/telemetry/tracing"
	"github.com/chihironakai0517/workout-tracker/internal/timer"
	"github.com/chihironakai0517/workout-tracker/internal/workouts"
)

const sessionsScanInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	kv          store.KV

	loginChecker *auth.LoginChecker
	authService  *auth.Service
	rateLimiter  middleware.RequestRateLimiter

	workoutsRepo     *workouts.Repo
	presetsRepo      *workouts.PresetsRepo
	measurementsRepo *health.MeasurementsRepo
	nutritionRepo    *health.NutritionRepo
	goalsRepo        *health.GoalsRepo
	summaryService   *summary.Service
	syncService      *datasync.Service
	timers           *timer.Manager

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var dbPool *pgxpool.Pool
	var poolCollector prometheus.Collector
	if cfg.StorageBackend == config.StorageBackendPostgres {
		var err error
		dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBPassword:     params.PostgresPassword,
			TracingEnabled: params.HoneycombTracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		if err := dbPool.Ping(ctx); err != nil {
			log.Warnf("failed to ping db: %s", err)
		}
		poolCollector = pgxpoolprometheus.NewCollector(
			dbPool,
			map[string]string{"db_name": cfg.PostgresDBName},
		)
	}

	promRegistry := metrics.SetupPrometheus(poolCollector)
	metricsManager := metrics.NewManager("tracker", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	// sessions and the login rate limiter live in redis for every storage backend
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "workout-tracker", rdb)
	if err != nil {
		return nil, err
	}

	backend, err := newBackendKV(ctx, cfg.StorageBackend, rdb, dbPool)
	if err != nil {
		return nil, err
	}

	s := newServer(cfg, params.VersionInfo, newStorage(backend, cfg, metricsManager), rdb, &auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, metricsManager)
	s.dbPool = dbPool
	s.promRegistry = promRegistry
	s.otelShutdown = otelShutdown

	go func() {
		ticker := time.NewTicker(sessionsScanInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.authService.ScanAndClean(ctx, now)
			}
		}
	}()

	restored, err := s.timers.Restore(ctx)
	if err != nil {
		log.Errorf("restore timers: %s", err)
	} else {
		log.Debugf("restored %d timers", restored)
	}

	return s, nil
}

// newServer wires repos, services and auth on top of an already built storage.
func newServer(
	cfg *config.Config,
	versionInfo string,
	kv store.KV,
	rdb *redis.Client,
	admin *auth.Admin,
	metricsManager *metrics.Manager,
) *Server {
	measurementsRepo := health.NewMeasurementsRepo(kv)
	nutritionRepo := health.NewNutritionRepo(kv)
	goalsRepo := health.NewGoalsRepo(kv)
	workoutsRepo := workouts.NewRepo(kv, measurementsRepo, cfg.DefaultBodyWeight)
	presetsRepo := workouts.NewPresetsRepo(kv)

	return &Server{
		config:      cfg,
		versionInfo: versionInfo,
		kv:          kv,
		redisClient: rdb,

		authService:  auth.NewAuthService(admin, auth.DefaultTTL, rdb),
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		rateLimiter:  redis_rate.NewLimiter(rdb),

		workoutsRepo:     workoutsRepo,
		presetsRepo:      presetsRepo,
		measurementsRepo: measurementsRepo,
		nutritionRepo:    nutritionRepo,
		goalsRepo:        goalsRepo,
		summaryService:   summary.NewService(measurementsRepo, nutritionRepo, goalsRepo, workoutsRepo),
		syncService: datasync.NewService(
			workoutsRepo,
			presetsRepo,
			measurementsRepo,
			nutritionRepo,
			goalsRepo,
			metricsManager,
		),
		timers: timer.NewManager(kv, metricsManager),

		metricsManager: metricsManager,
		otelShutdown:   func() {},
	}
}

func newBackendKV(ctx context.Context, backend string, rdb *redis.Client, dbPool *pgxpool.Pool) (store.KV, error) {
	switch backend {
	case config.StorageBackendRedis:
		return store.NewRedisStore(rdb, store.DefaultRedisKeyPrefix), nil
	case config.StorageBackendPostgres:
		pgStore := store.NewPostgresStore(dbPool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure postgres schema: %w", err)
		}
		return pgStore, nil
	case config.StorageBackendMemory:
		log.Warnln("using in-memory storage, data will not survive a restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

// newStorage decorates the backend with tracing and metrics, and a read-through cache when configured.
func newStorage(backend store.KV, cfg *config.Config, metricsManager *metrics.Manager) store.KV {
	var kv store.KV = store.NewInstrumented(backend, metricsManager)
	if cfg.CacheSizeMB > 0 {
		kv = store.NewCached(kv, cfg.CacheSizeMB, cfg.CacheTTLSeconds)
	}
	return kv
}

func (s *Server) mcpHandler() http.Handler {
	srv := trackermcp.NewServer(trackermcp.Sources{
		Workouts:     s.workoutsRepo,
		Measurements: s.measurementsRepo,
		Summaries:    s.summaryService,
		Sync:         s.syncService,
	})
	handler := mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
		return srv
	}, nil)
	return otelhttp.NewHandler(handler, "mcp")
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, s.rateLimiter, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)

	// literal paths go before {id} paths, mux matches in registration order
	workoutsHandler := workouts.NewHandler(s.workoutsRepo, s.presetsRepo, s.metricsManager)
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", workoutsHandler.HandleSave).Methods("POST", "OPTIONS").Name("save-workout")
	r.HandleFunc("/workouts/last", workoutsHandler.HandleLast).Methods("GET", "OPTIONS").Name("last-workout")
	r.HandleFunc("/workouts/summaries", workoutsHandler.HandleSummaries).Methods("GET", "OPTIONS").Name("workout-summaries")
	r.HandleFunc("/workouts/calories", workoutsHandler.HandleCalculateCalories).Methods("POST", "OPTIONS").Name("calculate-calories")
	r.HandleFunc("/workouts/progress/{name}", workoutsHandler.HandleProgress).Methods("GET", "OPTIONS").Name("exercise-progress")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")

	r.HandleFunc("/presets", workoutsHandler.HandleGetPresets).Methods("GET", "OPTIONS").Name("get-presets")
	r.HandleFunc("/presets/reset", workoutsHandler.HandleResetPresets).Methods("POST", "OPTIONS").Name("reset-presets")
	r.HandleFunc("/presets/{group}", workoutsHandler.HandleAddPreset).Methods("POST", "OPTIONS").Name("add-preset")
	r.HandleFunc("/presets/{group}", workoutsHandler.HandleRemovePreset).Methods("DELETE", "OPTIONS").Name("remove-preset")

	healthHandler := health.NewHandler(s.measurementsRepo, s.nutritionRepo, s.goalsRepo, s.metricsManager)
	r.HandleFunc("/health/measurements", healthHandler.HandleListMeasurements).Methods("GET", "OPTIONS").Name("list-measurements")
	r.HandleFunc("/health/measurements", healthHandler.HandleSaveMeasurement).Methods("POST", "OPTIONS").Name("save-measurement")
	r.HandleFunc("/health/measurements/latest", healthHandler.HandleLatestMeasurement).Methods("GET", "OPTIONS").Name("latest-measurement")
	r.HandleFunc("/health/measurements/{id}", healthHandler.HandleUpdateMeasurement).Methods("PUT", "OPTIONS").Name("update-measurement")
	r.HandleFunc("/health/measurements/{id}", healthHandler.HandleDeleteMeasurement).Methods("DELETE", "OPTIONS").Name("delete-measurement")
	r.HandleFunc("/health/bmr", healthHandler.HandleCalculateBMR).Methods("POST", "OPTIONS").Name("calculate-bmr")

	r.HandleFunc("/health/nutrition", healthHandler.HandleListNutrition).Methods("GET", "OPTIONS").Name("list-nutrition")
	r.HandleFunc("/health/nutrition/{date}", healthHandler.HandleGetNutrition).Methods("GET", "OPTIONS").Name("get-nutrition")
	r.HandleFunc("/health/nutrition/{date}", healthHandler.HandleSaveNutrition).Methods("PUT", "OPTIONS").Name("save-nutrition")
	r.HandleFunc("/health/nutrition/{date}/meals", healthHandler.HandleAddMeal).Methods("POST", "OPTIONS").Name("add-meal")
	r.HandleFunc("/health/nutrition/{date}/meals/{id}", healthHandler.HandleUpdateMeal).Methods("PUT", "OPTIONS").Name("update-meal")
	r.HandleFunc("/health/nutrition/{date}/meals/{id}", healthHandler.HandleDeleteMeal).Methods("DELETE", "OPTIONS").Name("delete-meal")
	r.HandleFunc("/health/nutrition/{date}/water", healthHandler.HandleUpdateWater).Methods("PUT", "OPTIONS").Name("update-water")

	r.HandleFunc("/health/goals", healthHandler.HandleGetGoals).Methods("GET", "OPTIONS").Name("get-goals")
	r.HandleFunc("/health/goals", healthHandler.HandleSaveGoals).Methods("PUT", "OPTIONS").Name("save-goals")
	r.HandleFunc("/health/goals", healthHandler.HandleClearGoals).Methods("DELETE", "OPTIONS").Name("clear-goals")
	r.HandleFunc("/health/goals/pfc", healthHandler.HandleCalculatePFC).Methods("POST", "OPTIONS").Name("calculate-pfc")

	summaryHandler := summary.NewHandler(s.summaryService)
	r.HandleFunc("/summary/weekly/{startDate}", summaryHandler.HandleWeekly).Methods("GET", "OPTIONS").Name("weekly-summary")
	r.HandleFunc("/summary/monthly/{year}/{month}", summaryHandler.HandleMonthly).Methods("GET", "OPTIONS").Name("monthly-summary")

	syncHandler := datasync.NewHandler(s.syncService)
	r.HandleFunc("/sync/export", syncHandler.HandleExport).Methods("GET", "OPTIONS").Name("sync-export")
	r.HandleFunc("/sync/import", syncHandler.HandleImport).Methods("POST", "OPTIONS").Name("sync-import")
	r.HandleFunc("/sync/code", syncHandler.HandleGetSyncCode).Methods("GET", "OPTIONS").Name("sync-code")
	r.HandleFunc("/sync/code", syncHandler.HandleImportSyncCode).Methods("POST", "OPTIONS").Name("sync-code-import")
	r.HandleFunc("/sync/link", syncHandler.HandleShareableLink).Methods("GET", "OPTIONS").Name("sync-link")
	r.HandleFunc("/sync/stats", syncHandler.HandleStats).Methods("GET", "OPTIONS").Name("sync-stats")

	timerWSHandler := timer.NewWSHandler(s.timers, s.config.AllowedOrigins)
	r.HandleFunc(middleware.TimerWSPath, timerWSHandler.HandleWS).Methods("GET").Name("timer-ws")

	r.PathPrefix("/mcp").Handler(s.mcpHandler()).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler: router,
		Addr:    ipAndPort,
		// no WriteTimeout, the timer websocket and mcp streams are long lived
		ReadHeaderTimeout: 10 * time.Second,
		ConnState:         s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// running timers keep their persisted state and are restored on the next start
	s.timers.Shutdown()
	log.Debugln("timers stopped")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
