package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Dudussm91/NuksEdition/internal/config"
	"github.com/Dudussm91/NuksEdition/internal/db"
	"github.com/Dudussm91/NuksEdition/internal/email"
	apihttp "github.com/Dudussm91/NuksEdition/internal/http"
	"github.com/Dudussm91/NuksEdition/internal/repository"
	"github.com/Dudussm91/NuksEdition/internal/service"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	accountRepo := repository.NewPgAccountRepository(pool)
	registrationRepo := repository.NewPgRegistrationRepository(pool)
	friendRepo := repository.NewPgFriendRepository(pool)
	newsRepo := repository.NewPgNewsRepository(pool)
	chatRepo := repository.NewPgChatRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		codeLimiter service.CodeRateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			codeLimiter = service.NewRedisCodeRateLimiter(redisClient, 10*time.Minute, 3)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}
	if len(cfg.AdminEmails) == 0 {
		logger.Warn("no admin emails configured")
	}

	accountSvc := service.NewAccountService(logger, accountRepo, registrationRepo, friendRepo, newsRepo, chatRepo, emailSender, codeLimiter)
	friendSvc := service.NewFriendService(logger, accountRepo, friendRepo)
	newsSvc := service.NewNewsService(logger, newsRepo, cfg.AdminEmails)
	chatSvc := service.NewChatService(logger, accountRepo, chatRepo)

	accountHandler := apihttp.NewAccountHandler(logger, accountSvc, jwtSvc)
	friendHandler := apihttp.NewFriendHandler(logger, friendSvc)
	newsHandler := apihttp.NewNewsHandler(logger, newsSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	router := apihttp.NewRouter(logger, jwtSvc, accountHandler, friendHandler, newsHandler, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
