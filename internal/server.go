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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/lukasito25/momentum-vita-sub001/internal/auth"
	"github.com/lukasito25/momentum-vita-sub001/internal/config"
	"github.com/lukasito25/momentum-vita-sub001/internal/db"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/achievements"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/progress"
	"github.com/lukasito25/momentum-vita-sub001/internal/gamification/stats"
	"github.com/lukasito25/momentum-vita-sub001/internal/middleware"
	"github.com/lukasito25/momentum-vita-sub001/internal/misc"
	"github.com/lukasito25/momentum-vita-sub001/internal/preferences"
	"github.com/lukasito25/momentum-vita-sub001/internal/store"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/metrics"
	"github.com/lukasito25/momentum-vita-sub001/internal/telemetry/tracing"
	"github.com/lukasito25/momentum-vita-sub001/internal/workouts/completion"
	"github.com/lukasito25/momentum-vita-sub001/internal/workouts/tracking"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appSecret         string // shared with the mobile app clients
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	AppSecret               string
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
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "momentum_vita_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "main-backend", rdb)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		appSecret:   params.AppSecret,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	// every entity store is the same two-tier shape: postgres repo as the
	// remote, redis JSON snapshots as the local fallback
	progressStore := store.NewTwoTier[progress.UserProgress](
		"progress",
		progress.NewRepo(s.dbPool),
		store.NewRedisJSON[progress.UserProgress](s.redisClient, "momentum::progress"),
		s.metricsManager,
	)
	progressService := progress.NewService(progressStore, s.metricsManager)

	statsStore := store.NewTwoTier[stats.GamificationStats](
		"stats",
		stats.NewRepo(s.dbPool),
		store.NewRedisJSON[stats.GamificationStats](s.redisClient, "momentum::stats"),
		s.metricsManager,
	)
	statsService := stats.NewService(statsStore)

	catalog := achievements.NewCachedCatalog(
		achievements.NewRepo(s.dbPool),
		s.config.CatalogCacheTTLSeconds,
	)
	achievementsService := achievements.NewService(catalog, progressService, s.metricsManager)

	progressHandler := progress.NewHandler(progressService, achievementsService)
	r.HandleFunc("/users/{userID}/progress", progressHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-progress")
	r.HandleFunc("/users/{userID}/progress", progressHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-progress")
	r.HandleFunc("/users/{userID}/progress/xp", progressHandler.HandleAddXP).Methods("POST", "OPTIONS").Name("add-xp")
	r.HandleFunc("/users/{userID}/program", progressHandler.HandleSetProgram).Methods("POST", "OPTIONS").Name("set-program")
	r.HandleFunc("/users/{userID}/program/advance-week", progressHandler.HandleAdvanceWeek).Methods("POST", "OPTIONS").Name("advance-week")
	r.HandleFunc("/users/{userID}/program/complete", progressHandler.HandleCompleteProgram).Methods("POST", "OPTIONS").Name("complete-program")

	statsHandler := stats.NewHandler(statsService)
	r.HandleFunc("/users/{userID}/stats", statsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-stats")
	r.HandleFunc("/users/{userID}/stats/weekly-reset", statsHandler.HandleWeeklyReset).Methods("POST", "OPTIONS").Name("weekly-reset")

	achievementsHandler := achievements.NewHandler(achievementsService)
	r.HandleFunc("/achievements", achievementsHandler.HandleGetCatalog).Methods("GET", "OPTIONS").Name("achievements-catalog")
	r.HandleFunc("/users/{userID}/achievements", achievementsHandler.HandleGetUserAchievements).Methods("GET", "OPTIONS").Name("user-achievements")

	preferencesHandler := preferences.NewHandler(store.NewTwoTier[preferences.UserPreferences](
		"preferences",
		preferences.NewRepo(s.dbPool),
		store.NewRedisJSON[preferences.UserPreferences](s.redisClient, "momentum::preferences"),
		s.metricsManager,
	))
	r.HandleFunc("/users/{userID}/preferences", preferencesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-preferences")
	r.HandleFunc("/users/{userID}/preferences", preferencesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-preferences")

	sessionsRepo := tracking.NewRepo(s.dbPool)
	sessionsStore := store.NewTwoTier[tracking.WorkoutSession](
		"session",
		sessionsRepo,
		store.NewRedisJSON[tracking.WorkoutSession](s.redisClient, "momentum::session"),
		s.metricsManager,
	)
	trackingService := tracking.NewService(
		sessionsStore,
		sessionsRepo,
		store.NewRedisJSON[string](s.redisClient, "momentum::active-session"),
		progressService,
		s.metricsManager,
	)
	trackingHandler := tracking.NewHandler(trackingService, sessionsRepo)
	r.HandleFunc("/users/{userID}/sessions", trackingHandler.HandleStartSession).Methods("POST", "OPTIONS").Name("start-session")
	r.HandleFunc("/users/{userID}/sessions", trackingHandler.HandleListSessions).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/users/{userID}/sessions/active", trackingHandler.HandleGetActiveSession).Methods("GET", "OPTIONS").Name("active-session")
	r.HandleFunc("/users/{userID}/sessions/{sessionID}/abandon", trackingHandler.HandleAbandonSession).Methods("POST", "OPTIONS").Name("abandon-session")
	r.HandleFunc("/users/{userID}/sessions/{sessionID}/exercises", trackingHandler.HandleInitializeExercise).Methods("POST", "OPTIONS").Name("initialize-exercise")
	r.HandleFunc("/users/{userID}/sessions/{sessionID}/exercises/{exerciseID}/sets", trackingHandler.HandleCompleteSet).Methods("POST", "OPTIONS").Name("complete-set")
	r.HandleFunc("/users/{userID}/sessions/{sessionID}/exercises/{exerciseID}/complete", trackingHandler.HandleCompleteExercise).Methods("POST", "OPTIONS").Name("complete-exercise")
	r.HandleFunc("/users/{userID}/exercises/history", trackingHandler.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("exercise-history")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)

	completionService := completion.NewService(
		statsService,
		progressService,
		achievementsService,
		trackingService,
		s.metricsManager,
	)
	completionHandler := completion.NewHandler(completionService)
	completionSubrouter := r.PathPrefix("/users/{userID}/workouts").Subrouter()
	completionSubrouter.
		HandleFunc("/complete", completionHandler.HandleCompleteWorkout).
		Methods("POST", "OPTIONS").Name("complete-workout")
	completionSubrouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"complete-workout",
		s.config.CompleteWorkoutRateLimitAllowedPerMin,
		s.metricsManager,
	))

	miscHandler := misc.NewHandler(s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.appSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
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
