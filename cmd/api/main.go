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

	"github.com/listygo/listygo-backend/api/routes"
	"github.com/listygo/listygo-backend/internal/admins"
	"github.com/listygo/listygo-backend/internal/auth"
	"github.com/listygo/listygo-backend/internal/categories"
	"github.com/listygo/listygo-backend/internal/hotels"
	"github.com/listygo/listygo-backend/internal/identity"
	"github.com/listygo/listygo-backend/internal/listings"
	"github.com/listygo/listygo-backend/internal/users"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/db"
	"github.com/listygo/listygo-backend/pkg/logger"
	"github.com/listygo/listygo-backend/pkg/mailer"
	"github.com/listygo/listygo-backend/pkg/migrate"
	"github.com/listygo/listygo-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	userRepo := users.NewRepository(dbClient.DB())
	adminRepo := admins.NewRepository(dbClient.DB())
	methodRepo := users.NewPaymentMethodRepository(dbClient.DB())
	listingRepo := listings.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())
	hotelRepo := hotels.NewRepository(dbClient.DB())

	resolver := identity.NewResolver(userRepo, adminRepo)

	var mailSender mailer.Sender
	if cfg.SMTP.Enabled() {
		mailSender = mailer.NewSMTPSender(cfg.SMTP)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		AdminRepo:      adminRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{
		Repo:           userRepo,
		PaymentMethods: methodRepo,
		Tx:             dbClient,
		PasswordConfig: cfg.Password,
		SMTPConfig:     cfg.SMTP,
		Mailer:         mailSender,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	adminService, err := admins.NewService(admins.ServiceParams{
		Repo:           adminRepo,
		Users:          userRepo,
		Hotels:         hotelRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admins service", err)
		os.Exit(1)
	}

	listingService, err := listings.NewService(listings.ServiceParams{
		Repo:       listingRepo,
		Categories: categoryRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create listings service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categoryRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create categories service", err)
		os.Exit(1)
	}

	hotelService, err := hotels.NewService(hotelRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create hotels service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Deps{
		Config:     cfg,
		Logger:     logg,
		DB:         dbClient,
		Redis:      redisClient,
		Resolver:   resolver,
		Auth:       authService,
		Users:      userService,
		Admins:     adminService,
		Listings:   listingService,
		Categories: categoryService,
		Hotels:     hotelService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
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
		}
	}
}
