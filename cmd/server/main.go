package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/fourrow/game-server/internal/config"
	"github.com/fourrow/game-server/internal/events"
	"github.com/fourrow/game-server/internal/repository/postgres"
	"github.com/fourrow/game-server/internal/repository/redis"
	"github.com/fourrow/game-server/internal/service/cleanup"
	"github.com/fourrow/game-server/internal/service/game"
	"github.com/fourrow/game-server/internal/service/matchmaking"
	transportHttp "github.com/fourrow/game-server/internal/transport/http"
	"github.com/fourrow/game-server/internal/transport/http/middleware"
	"github.com/fourrow/game-server/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()

	// Postgres backs the stats endpoints only; the session engine is
	// fully in-memory and keeps running without it.
	var resultRepo *postgres.ResultRepo
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMin) * time.Minute)

		if err := db.Ping(); err != nil {
			log.Fatal("Database unreachable:", err)
		}
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		resultRepo = postgres.NewResultRepo(db)
	} else {
		log.Println("DATABASE_URL not set, stats endpoints disabled")
	}

	if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
		log.Printf("Failed to initialize Redis: %v", err)
	}
	defer redis.CloseRedis()

	var sink events.Sink = events.NopSink{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Printf("[SINK] Publishing game results to %v topic %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	} else {
		log.Println("[SINK] KAFKA_BROKERS not set, game results are not published")
	}

	connManager := websocket.NewConnectionManager()
	store := game.NewStore()
	queue := matchmaking.NewQueue(cfg.MatchmakingWait)
	forfeits := game.NewForfeitRegistry(cfg.ForfeitWindow)
	controller := game.NewController(store, queue, forfeits, sink, connManager, cfg.BotMoveDelay)
	go controller.Run()

	cleanupWorker := cleanup.NewWorker(store, cfg.SessionMaxAge)
	cleanupWorker.Start()

	wsHandler := websocket.NewHandler(connManager, controller, cfg.AllowedOrigins)

	router := mux.NewRouter()
	router.Use(middleware.EnableCORS(cfg.AllowedOrigins))
	router.HandleFunc("/ws", wsHandler.HandleWebSocket)

	if resultRepo != nil {
		var cache transportHttp.Cache
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			cache = redis.NewRedisCache(redis.RedisClient)
		}
		statsHandler := transportHttp.NewStatsHandler(resultRepo, cache, cfg.StatsCacheTTL)
		router.HandleFunc("/api/stats", statsHandler.GetStats).Methods(http.MethodGet, http.MethodOptions)
		router.HandleFunc("/api/leaderboard", statsHandler.GetLeaderboard).Methods(http.MethodGet, http.MethodOptions)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
