package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"churn-metrics-hub/api"
	"churn-metrics-hub/cache"
	"churn-metrics-hub/config"
	"churn-metrics-hub/database"
	"churn-metrics-hub/database/metrics"
)

// App represents the main application
type App struct {
	config      *config.Config
	db          *database.Database
	pool        *database.SQLPool
	redis       *cache.RedisClient
	reportCache *cache.ReportCache
	repo        *metrics.Repository
	server      *api.Server
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection (GORM, model reads)
	fmt.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	// Raw pool for the date-range report queries
	pool, err := database.NewSQLPool(database.PoolConfig{
		Host:     a.config.DatabaseHost,
		Port:     a.config.DatabasePort,
		User:     a.config.DatabaseUser,
		Password: a.config.DatabasePassword,
		DBName:   a.config.DatabaseName,
	})
	if err != nil {
		return fmt.Errorf("database pool failed: %w", err)
	}
	a.pool = pool

	// 2. Redis Connection
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)

	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Report caching disabled.")
	} else {
		a.redis = redisClient
	}
	a.reportCache = cache.NewReportCache(a.redis, time.Duration(a.config.CacheTTLSeconds)*time.Second)

	// 3. Schema initialization
	a.repo = metrics.NewRepository(a.db.DB(), a.pool.Conn())
	if err := a.repo.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 4. API Server
	a.server = api.NewServer(a.repo, a.reportCache, a.pool, a.config)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(a.config.ServerPort)
	}()

	// 5. Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.shutdown()
		return fmt.Errorf("api server stopped: %w", err)
	case sig := <-sigCh:
		log.Printf("📴 Received %s, shutting down...", sig)
		a.shutdown()
		return nil
	}
}

func (a *App) shutdown() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Redis close error: %v", err)
		}
	}
	if a.pool != nil {
		if err := a.pool.Close(); err != nil {
			log.Printf("⚠️  Pool close error: %v", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("⚠️  Database close error: %v", err)
		}
	}
	log.Println("✅ Shutdown complete")
}
