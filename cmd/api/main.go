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

	"github.com/egotransfert/auth-api/internal/application/auth"
	"github.com/egotransfert/auth-api/internal/config"
	"github.com/egotransfert/auth-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/egotransfert/auth-api/internal/infrastructure/jwt"
	s3infra "github.com/egotransfert/auth-api/internal/infrastructure/s3"
	"github.com/egotransfert/auth-api/internal/infrastructure/smtp"
	"github.com/egotransfert/auth-api/internal/infrastructure/sns"
	transporthttp "github.com/egotransfert/auth-api/internal/transport/http"
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

	jwtProvider := jwtinfra.NewProvider(cfg)

	// S3 store for profile photos.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — resend-otp falls back to email without it).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	otpRepo := dynamo.NewOTPRepo(dynamoClient, cfg.DynamoTables.UserOTPs)
	refreshRepo := dynamo.NewRefreshTokenRepo(dynamoClient, cfg.DynamoTables.RefreshTokens)
	txRepo := dynamo.NewTxRepo(dynamoClient, cfg.DynamoTables.Users, cfg.DynamoTables.UserOTPs)

	// Seed the superadmin account before serving traffic.
	bootstrapSvc := auth.NewService(auth.ServiceDeps{
		UserRepo: userRepo,
		Mailer:   mailer,
		Tokens:   jwtProvider,
		OTPTTL:   cfg.OTPTTL,
	})
	if err := bootstrapSvc.BootstrapSuperAdmin(context.Background(), cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		log.Fatalf("superadmin bootstrap failed: %v", err)
	}

	deps := &transporthttp.Deps{
		UserRepo:    userRepo,
		OTPRepo:     otpRepo,
		RefreshRepo: refreshRepo,
		TxRepo:      txRepo,
		PhotoStore:  s3Store,
		Mailer:      mailer,
		SMSSender:   smsSender,
		JWTProvider: jwtProvider,
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
