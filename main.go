package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/config"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/handler"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/messaging"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/ratelimit"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/repository"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/service"
	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig("config/config.json")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Connect to Redis (submission rate limiting)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis")

	// Connect to object storage
	objectStore, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		BaseEndpoint:  cfg.Storage.BaseEndpoint,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to set up object storage: %v", err)
	}

	// Connect to RabbitMQ
	rmq, err := messaging.NewRabbitMQ(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
	)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rmq.Close()
	log.Println("Connected to RabbitMQ")

	// Initialize SSE Hub
	sseHub := messaging.NewSSEHub()
	go sseHub.Run()

	// Initialize repositories
	complaintRepo := repository.NewComplaintRepository(db)
	entryRepo := repository.NewWasteEntryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// Start outbox worker and notification consumer
	outboxWorker := messaging.NewOutboxWorker(outboxRepo, rmq)
	outboxWorker.Start()
	defer outboxWorker.Stop()

	consumer := messaging.NewNotificationConsumer(rmq, notificationRepo, sseHub)
	consumer.Start()
	defer consumer.Stop()
	log.Println("Notification consumer started")

	// Initialize rate limiter
	limiter := ratelimit.NewLimiter(
		ratelimit.NewRedisStore(rdb),
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxSubmissions,
	)

	// Initialize services
	complaintService := service.NewComplaintService(complaintRepo, limiter, objectStore, outboxRepo)
	entryService := service.NewWasteEntryService(entryRepo, objectStore, outboxRepo)
	notificationService := service.NewNotificationService(notificationRepo, sseHub)

	// Initialize handlers
	complaintHandler := handler.NewComplaintHandler(complaintService)
	entryHandler := handler.NewWasteEntryHandler(entryService)
	notificationHandler := handler.NewNotificationHandler(notificationService, cfg.JWT.Secret)

	// Setup Gin
	r := gin.Default()

	// Health check
	r.GET("/health", complaintHandler.Health)

	// Complaint intake (public) and triage (admin)
	r.POST("/complaints", complaintHandler.SubmitComplaint)
	r.POST("/complaints/:id/image", complaintHandler.RequestImageUpload)
	r.POST("/complaints/:id/image/finalize", complaintHandler.FinalizeImageUpload)
	r.GET("/complaints", complaintHandler.GetComplaints)
	r.GET("/complaints/:id", complaintHandler.GetComplaintByID)
	r.PATCH("/complaints/:id/status", complaintHandler.UpdateStatus)
	r.PATCH("/complaints/:id/assign", complaintHandler.Assign)

	// Waste entry routes
	r.POST("/entries", entryHandler.CreateEntry)
	r.GET("/entries", entryHandler.GetEntries)
	r.GET("/entries/my", entryHandler.GetMyEntries)
	r.PATCH("/entries/:id/status", entryHandler.UpdateStatus)
	r.POST("/entries/image-upload", entryHandler.RequestImageUpload)

	// Dashboard
	r.GET("/dashboard/summary", entryHandler.GetSummary)
	r.GET("/dashboard/leaderboard", entryHandler.GetLeaderboard)

	// Notification routes
	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.GET("/stream", notificationHandler.StreamNotifications)
		notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
		notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("EcoShift service starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
