package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiready/internal/cache"
	"aiready/internal/config"
	"aiready/internal/repository"
	"aiready/internal/scoring"
	"aiready/internal/service"
	"aiready/internal/transport/rest"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Scoring map is loaded once and injected; the server refuses to
	// start without it since every answer is scored through it.
	scoringMap, err := scoring.LoadFile(cfg.ScoringMapPath)
	if err != nil {
		log.Fatal("Failed to load scoring map:", err)
	}
	log.Printf("Scoring map loaded: %d questions", scoringMap.Len())

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	questionRepo := repository.NewQuestionRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	historyRepo := repository.NewHistoryRepo(db)

	// Initialize caches
	catalogCache := cache.NewCatalogCache(rdb)
	readinessCache := cache.NewReadinessCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService()
	samplerSvc := service.NewSamplerService(questionRepo, catalogCache)
	historySvc := service.NewHistoryService(historyRepo, sessionRepo, readinessCache)
	assessmentSvc := service.NewAssessmentService(sessionRepo, responseRepo, questionRepo, historySvc, readinessCache, scoringMap)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		SamplerService:    samplerSvc,
		AssessmentService: assessmentSvc,
		HistoryService:    historySvc,
		ReadinessCache:    readinessCache,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/assessment/questions")
		log.Println("  POST /v1/assessment/sessions")
		log.Println("  POST /v1/assessment/sessions/{id}/responses")
		log.Println("  POST /v1/assessment/sessions/{id}/complete")
		log.Println("  GET  /v1/assessment/history")
		log.Println("  GET  /v1/assessment/readiness-board")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
