package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/listygo/listygo-backend/internal/admins"
	"github.com/listygo/listygo-backend/internal/identity"
	"github.com/listygo/listygo-backend/pkg/config"
	"github.com/listygo/listygo-backend/pkg/db"
	"github.com/listygo/listygo-backend/pkg/env"
	"github.com/listygo/listygo-backend/pkg/logger"
	"github.com/listygo/listygo-backend/pkg/security"
)

const tempPasswordLength = 24

// Seeds the bootstrap super-admin. Safe to run repeatedly: an existing
// account with the configured email is left untouched.
func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	email := strings.ToLower(strings.TrimSpace(env.Get("LISTYGO_SEED_ADMIN_EMAIL", "")))
	if email == "" {
		logg.Error(context.Background(), "LISTYGO_SEED_ADMIN_EMAIL is required", errors.New("missing seed email"))
		os.Exit(1)
	}
	name := env.Get("LISTYGO_SEED_ADMIN_NAME", "Super Admin")

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":   cfg.App.Env,
		"email": email,
	})

	repo := admins.NewRepository(dbClient.DB())
	if _, err := repo.FindByEmail(ctx, email); err == nil {
		logg.Info(ctx, "super-admin already exists, nothing to do")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logg.Error(ctx, "failed to look up admin", err)
		os.Exit(1)
	}

	password := env.Get("LISTYGO_SEED_ADMIN_PASSWORD", "")
	generated := false
	if password == "" {
		password, err = security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			logg.Error(ctx, "failed to generate password", err)
			os.Exit(1)
		}
		generated = true
	}

	hash, err := security.HashPassword(password, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}

	admin, err := repo.Create(ctx, admins.CreateAdminDTO{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         identity.RoleSuperAdmin,
	})
	if err != nil {
		logg.Error(ctx, "failed to create super-admin", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "admin_id", admin.ID.String()), "super-admin created")
	if generated {
		// Printed once; it is never stored in plaintext anywhere.
		fmt.Printf("generated super-admin password: %s\n", password)
	}
}
