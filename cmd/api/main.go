package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ninamwrites/bookstore-backend/api/routes"
	authsvc "github.com/ninamwrites/bookstore-backend/internal/auth"
	cartsvc "github.com/ninamwrites/bookstore-backend/internal/cart"
	"github.com/ninamwrites/bookstore-backend/internal/catalog"
	"github.com/ninamwrites/bookstore-backend/internal/customers"
	dashboardsvc "github.com/ninamwrites/bookstore-backend/internal/dashboard"
	newslettersvc "github.com/ninamwrites/bookstore-backend/internal/newsletter"
	ordersvc "github.com/ninamwrites/bookstore-backend/internal/orders"
	testimonialsvc "github.com/ninamwrites/bookstore-backend/internal/testimonials"
	"github.com/ninamwrites/bookstore-backend/pkg/auth/session"
	"github.com/ninamwrites/bookstore-backend/pkg/config"
	"github.com/ninamwrites/bookstore-backend/pkg/db"
	"github.com/ninamwrites/bookstore-backend/pkg/env"
	"github.com/ninamwrites/bookstore-backend/pkg/logger"
	"github.com/ninamwrites/bookstore-backend/pkg/mailer"
	"github.com/ninamwrites/bookstore-backend/pkg/metrics"
	"github.com/ninamwrites/bookstore-backend/pkg/migrate"
	"github.com/ninamwrites/bookstore-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	smtp, err := mailer.NewSMTP(cfg.SMTP)
	if err != nil {
		logg.Error(context.Background(), "failed to configure mailer", err)
		os.Exit(1)
	}

	bookRepo := catalog.NewRepository(dbClient.DB())
	merchRepo := catalog.NewMerchRepository(dbClient.DB())
	customerRepo := customers.NewRepository(dbClient.DB())
	orderRepo := ordersvc.NewRepository(dbClient.DB())
	subscriberRepo := newslettersvc.NewRepository(dbClient.DB())
	testimonialRepo := testimonialsvc.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(bookRepo, merchRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(cartStore, bookRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(customerRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderRepo, dbClient, cartService, bookRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	newsletterService, err := newslettersvc.NewService(subscriberRepo, smtp)
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	testimonialService, err := testimonialsvc.NewService(testimonialRepo, orderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create testimonial service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboardsvc.NewService(bookRepo, merchRepo, orderRepo, subscriberRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:       cfg,
		Logger:       logg,
		DB:           dbClient,
		Redis:        redisClient,
		Metrics:      metrics.NewHTTPMetrics(),
		Sessions:     sessionManager,
		Mailer:       smtp,
		Auth:         authService,
		Catalog:      catalogService,
		Cart:         cartService,
		Orders:       orderService,
		Newsletter:   newsletterService,
		Testimonials: testimonialService,
		Dashboard:    dashboardService,
	})

	port := env.Get("PORT", cfg.App.Port)
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
