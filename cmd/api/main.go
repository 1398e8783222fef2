package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mockmate/internal/config"
	"mockmate/internal/db"
	"mockmate/internal/email"
	apihttp "mockmate/internal/http"
	"mockmate/internal/repository"
	"mockmate/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
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

	userRepo := repository.NewPgUserRepository(pool)
	roleRepo := repository.NewPgRoleRepository(pool)
	catalogRepo := repository.NewPgCatalogRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	taskRepo := repository.NewPgTaskRepository(pool)

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
		otpStore    service.OTPStore
		otpLimiter  service.OTPRateLimiter
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
			otpStore = service.NewRedisOTPStore(redisClient)
			otpLimiter = service.NewRedisOTPRateLimiter(redisClient, 10*time.Minute, 3)
		}
		cancel()
	}

	var captcha service.CaptchaVerifier
	if cfg.RecaptchaSecret != "" {
		captcha = service.NewRecaptchaVerifier(cfg.RecaptchaSecret)
	} else if cfg.IsDevelopment() {
		logger.Warn("recaptcha secret not configured, accepting any captcha (development)")
		captcha = service.NewStaticCaptchaVerifier(true)
	} else {
		logger.Warn("recaptcha secret not configured, rejecting all logins")
		captcha = service.NewStaticCaptchaVerifier(false)
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	authSvc := service.NewAuthService(
		logger,
		userRepo,
		roleRepo,
		service.NewBcryptHasher(),
		otpStore,
		otpLimiter,
		captcha,
		emailSender,
		service.NewTrustingProviderVerifier(),
		cfg.IsDevelopment(),
	)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, jwtSvc)
	profileHandler := apihttp.NewProfileHandler(logger, userRepo)
	catalogHandler := apihttp.NewCatalogHandler(logger, catalogRepo)
	sessionHandler := apihttp.NewSessionHandler(logger, sessionRepo)
	taskHandler := apihttp.NewTaskHandler(logger, taskRepo)
	router := apihttp.NewRouter(logger, jwtSvc, authHandler, profileHandler, catalogHandler, sessionHandler, taskHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.AppEnv))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
