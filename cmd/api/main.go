package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"travelnest/internal/config"
	"travelnest/internal/database"
	"travelnest/internal/mail"
	"travelnest/internal/middleware"
	"travelnest/internal/modules/auth"
	"travelnest/internal/modules/booking"
	"travelnest/internal/modules/listing"
	"travelnest/internal/modules/payment"
	"travelnest/internal/modules/review"
	"travelnest/internal/modules/stats"
	jwtsvc "travelnest/internal/pkg/jwt"
	"travelnest/internal/platform/logger"
	"travelnest/internal/platform/redisclient"
	"travelnest/internal/repository"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	j := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)
	mailQueue := mail.NewQueue(rdb)
	gateway := payment.NewChapaClient(cfg.Chapa)

	authService := auth.NewService(userRepo, j, log)
	listingService := listing.NewService(listingRepo, log)
	bookingService := booking.NewService(bookingRepo, listingRepo, log)
	paymentService := payment.NewService(paymentRepo, bookingRepo, userRepo, gateway, mailQueue, log, cfg.Chapa)
	reviewService := review.NewService(reviewRepo, bookingRepo, log)
	statsService := stats.NewService(statsRepo)

	authHandler := auth.NewHandler(authService)
	listingHandler := listing.NewHandler(listingService)
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(paymentService)
	reviewHandler := review.NewHandler(reviewService)
	statsHandler := stats.NewHandler(statsService)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		listingHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterWebhook(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			listingHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			statsHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: r,
	}

	go func() {
		log.Infof("api listening on :%s", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown error: %v", err)
		os.Exit(1)
	}
}
