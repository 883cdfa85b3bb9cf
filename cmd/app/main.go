package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"realestate-marketplace/internal/config"
	"realestate-marketplace/internal/domain/model"
	mongodb "realestate-marketplace/internal/infra/db/mongo"
	"realestate-marketplace/internal/infra/logging"
	"realestate-marketplace/internal/infra/metrics"
	"realestate-marketplace/internal/infra/payment"
	red "realestate-marketplace/internal/infra/redis"
	"realestate-marketplace/internal/infra/sched"
	"realestate-marketplace/internal/infra/web"
	"realestate-marketplace/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, insecure cookies)")
	flag.Parse()

	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	// ---- MongoDB ----
	db, err := mongodb.NewDatabase(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connect failed")
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("mongodb index setup failed")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)

	// ---- Repositories ----
	userRepo := mongodb.NewUserRepo(db)
	planRepo := mongodb.NewPlanRepo(db)
	propertyRepo := mongodb.NewPropertyRepo(db)
	blogRepo := mongodb.NewBlogRepo(db)
	testimonialRepo := mongodb.NewTestimonialRepo(db)
	txManager := mongodb.NewTxManager(db)

	// ---- Payment gateway ----
	gateway := payment.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)

	// ---- Use cases ----
	catalog := model.DefaultCatalog()
	planUC := usecase.NewPlanLifecycleUseCase(planRepo, userRepo, txManager, gateway, locker, catalog, logger)
	userUC := usecase.NewUserUseCase(userRepo, logger)
	propertyUC := usecase.NewPropertyUseCase(propertyRepo, userRepo, logger)
	blogUC := usecase.NewBlogUseCase(blogRepo, userRepo, logger)
	testimonialUC := usecase.NewTestimonialUseCase(testimonialRepo, logger)
	statsUC := usecase.NewStatsUseCase(userRepo, planRepo, logger)

	// ---- HTTP server ----
	metrics.MustRegister()
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.SecureCookie && !cfg.Runtime.Dev, cfg.Auth.CookieDomain, cfg.Auth.TokenTTL)
	srv := web.NewServer(planUC, userUC, propertyUC, blogUC, testimonialUC, statsUC, catalog, auth, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Expiry worker ----
	worker := sched.NewExpiryWorker(cfg.Scheduler.ExpiryCheckInterval, planUC, statsUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
}
