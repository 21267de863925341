package config

import (
	"testing"
	"time"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_MAX_AGE_HOURS", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://tuff.example, https://shop.example ,")

	cfg := Load()

	if !cfg.IsProduction() {
		t.Error("expected production env")
	}
	if !cfg.Session.Secure {
		t.Error("cookies must be secure in production")
	}
	if cfg.Session.MaxAge != 12*time.Hour {
		t.Errorf("Session.MaxAge = %v, want 12h", cfg.Session.MaxAge)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://shop.example" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := &Config{Session: SessionConfig{MaxAge: time.Hour}}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for empty JWT secret")
	}
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p",
		Database: "tuff", Schema: "public", SSLMode: "disable",
	}
	want := "postgres://u:p@db:5432/tuff?sslmode=disable&search_path=public"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
