package config

import (
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LISTYGO_APP_ENV", "development")
	t.Setenv("LISTYGO_APP_PORT", "8080")
	t.Setenv("LISTYGO_JWT_SECRET", "secret")
	t.Setenv("LISTYGO_JWT_ISSUER", "listygo")
	t.Setenv("LISTYGO_JWT_EXPIRATION_MINUTES", "30")
}

func TestLoadWithExplicitDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LISTYGO_DB_DSN", "postgres://app:pw@localhost:5432/listygo?sslmode=disable")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.DSN != "postgres://app:pw@localhost:5432/listygo?sslmode=disable" {
		t.Fatalf("dsn was rewritten: %q", cfg.DB.DSN)
	}
	if !cfg.App.IsDev() || cfg.App.IsProd() {
		t.Fatalf("expected dev environment")
	}
}

func TestLoadAssemblesDSNFromParts(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LISTYGO_DB_HOST", "db.internal")
	t.Setenv("LISTYGO_DB_USER", "app")
	t.Setenv("LISTYGO_DB_PASSWORD", "pw")
	t.Setenv("LISTYGO_DB_NAME", "listygo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, part := range []string{"postgres://", "app:pw@", "db.internal:5432", "/listygo", "sslmode=disable"} {
		if !strings.Contains(cfg.DB.DSN, part) {
			t.Fatalf("dsn %q missing %q", cfg.DB.DSN, part)
		}
	}
}

func TestLoadFailsWithoutDSNOrParts(t *testing.T) {
	setBaseEnv(t)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when neither dsn nor parts provided")
	}
}

func TestSQLiteRequiresDSN(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LISTYGO_DB_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatalf("sqlite without dsn should fail")
	}

	t.Setenv("LISTYGO_DB_DSN", "file:listygo.db?cache=shared")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.DB.Driver)
	}
}

func TestJWTTTLs(t *testing.T) {
	cfg := JWTConfig{ExpirationMinutes: 45, CookieExpireDays: 7}
	if cfg.TokenTTL() != 45*time.Minute {
		t.Fatalf("token ttl = %s", cfg.TokenTTL())
	}
	if cfg.CookieTTL() != 7*24*time.Hour {
		t.Fatalf("cookie ttl = %s", cfg.CookieTTL())
	}
}

func TestSMTPEnabled(t *testing.T) {
	if (SMTPConfig{}).Enabled() {
		t.Fatalf("empty smtp config should be disabled")
	}
	if !(SMTPConfig{Host: "smtp.example.com"}).Enabled() {
		t.Fatalf("host set should enable smtp")
	}
}
