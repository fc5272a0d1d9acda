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

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/redis/go-redis/v9"

	_ "github.com/martalonghi/aura-wellness-engine/docs"
	"github.com/martalonghi/aura-wellness-engine/internal/adapters/assistant"
	"github.com/martalonghi/aura-wellness-engine/internal/adapters/cache"
	adapterHTTP "github.com/martalonghi/aura-wellness-engine/internal/adapters/handler/http"
	"github.com/martalonghi/aura-wellness-engine/internal/adapters/notify"
	"github.com/martalonghi/aura-wellness-engine/internal/adapters/repository"
	"github.com/martalonghi/aura-wellness-engine/internal/adapters/storage"
	"github.com/martalonghi/aura-wellness-engine/internal/core/domain"
	"github.com/martalonghi/aura-wellness-engine/internal/core/services"
	"github.com/martalonghi/aura-wellness-engine/internal/core/workers"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	serverPort := envOr("PORT", "8080")
	storageDriver := envOr("STORAGE_DRIVER", "postgres")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Postgres backs the record store (default driver) and the owner account
	// table. A memory-store run without DB config skips it entirely.
	var db *sqlx.DB
	if storageDriver == "postgres" || os.Getenv("DB_HOST") != "" {
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			envOr("DB_HOST", "localhost"), envOr("DB_PORT", "5432"),
			os.Getenv("DB_NAME"))

		log.Println("Connecting to database...")

		var err error
		db, err = sqlx.Connect("pgx", dsn)
		if err != nil {
			log.Fatalf("Critical: Failed to connect to database: %v", err)
		}
		defer db.Close()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		log.Println("Database connected successfully.")
	}

	var redisClient *redis.Client
	if os.Getenv("REDIS_HOST") != "" {
		var err error
		redisClient, err = cache.NewRedisClient(
			os.Getenv("REDIS_HOST"),
			envOr("REDIS_PORT", "6379"),
			os.Getenv("REDIS_PASSWORD"),
			0,
		)
		if err != nil {
			log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
			redisClient = nil
		}
	}

	var store domain.Store
	switch storageDriver {
	case "postgres":
		store = storage.NewPostgresStore(db)
	case "redis":
		if redisClient == nil {
			log.Fatal("Critical: STORAGE_DRIVER=redis but redis is not reachable")
		}
		store = storage.NewRedisStore(redisClient)
	case "memory":
		log.Println("WARNING: using in-memory storage, records are lost on restart")
		store = storage.NewInMemoryStore()
	default:
		log.Fatalf("Critical: unknown STORAGE_DRIVER %q", storageDriver)
	}

	goalRepo := repository.NewStoreGoalRepository(store)
	habitRepo := repository.NewStoreHabitRepository(store)
	snapshotRepo := repository.NewStoreSnapshotRepository(store)

	var routineRepo domain.RoutineRepository = repository.NewStoreRoutineRepository(store)
	if redisClient != nil {
		routineRepo = repository.NewCachedRoutineRepository(routineRepo, redisClient)
	}

	var userRepo domain.UserRepository
	if db != nil {
		userRepo = repository.NewPostgresUserRepository(db)
	} else {
		userRepo = repository.NewInMemoryUserRepository()
	}

	var notifier domain.Notifier
	if url := os.Getenv("NOTIFY_WEBHOOK_URL"); url != "" {
		notifier = notify.NewWebhookNotifier(url)
	} else {
		notifier = notify.NewLogNotifier()
	}

	notifierWorker := workers.NewNotifierWorker(notifier)
	notifierWorker.Start(ctx)

	var assistantClient domain.AssistantClient
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		var err error
		assistantClient, err = assistant.NewGenAIClient(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Printf("Assistant unavailable, chat will serve the fallback reply: %v", err)
			assistantClient = assistant.NewDisabledClient()
		}
	} else {
		assistantClient = assistant.NewDisabledClient()
	}

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(
		envOr("JWT_SECRET", "dev-secret-change-me"),
		envOr("JWT_ISSUER", "aura-wellness-engine"),
		720*time.Hour,
		userRepo,
	)
	goalService := services.NewGoalService(goalRepo)
	habitService := services.NewHabitService(habitRepo)
	routineService := services.NewRoutineService(routineRepo)
	ringsService := services.NewRingsService(goalRepo, habitRepo, routineRepo, snapshotRepo, notifierWorker)
	assistantService := services.NewAssistantService(assistantClient)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService, tokenService),
		GoalHandler:      adapterHTTP.NewGoalHandler(goalService),
		HabitHandler:     adapterHTTP.NewHabitHandler(habitService),
		RoutineHandler:   adapterHTTP.NewRoutineHandler(routineService),
		RingsHandler:     adapterHTTP.NewRingsHandler(ringsService),
		AssistantHandler: adapterHTTP.NewAssistantHandler(assistantService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            redisClient,
		StartTime:        startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Aura Wellness Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
