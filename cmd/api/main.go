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

	"github.com/KaneTraylor/empowertreatment-sub000/internal/config"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/dynamo"
	jwtinfra "github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/jwt"
	s3infra "github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/s3"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/smtp"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/sns"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/notify"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/ratelimit"
	transporthttp "github.com/KaneTraylor/empowertreatment-sub000/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — admin routes are closed if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Export archive bucket.
	s3Client := s3infra.NewClient(cfg)
	exportStore := s3infra.NewStore(s3Client, cfg.S3ExportBucket)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — email-only dispatch if unavailable).
	var smsSender notify.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		SubmissionRepo:   dynamo.NewSubmissionRepo(dynamoClient, cfg.DynamoTables.Submissions),
		PassRepo:         dynamo.NewPassRepo(dynamoClient, cfg.DynamoTables.WeekendPasses),
		VerificationRepo: dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications),
		HandbookRepo:     dynamo.NewHandbookRepo(dynamoClient, cfg.DynamoTables.HandbookAcks),
		ExportArchive:    exportStore,
		Mailer:           mailer,
		SMSSender:        smsSender,
		RateLimitStore:   ratelimit.NewMemoryStore(),
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
