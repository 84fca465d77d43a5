package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/casino?sslmode=disable")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.StartingBalance != 100 {
		t.Fatalf("StartingBalance = %d, want 100", cfg.StartingBalance)
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/casino?sslmode=disable")
	t.Setenv("STARTING_BALANCE", "250")
	t.Setenv("ADMIN_API_KEY", "hunter2")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.StartingBalance != 250 {
		t.Fatalf("StartingBalance = %d, want 250", cfg.StartingBalance)
	}
	if cfg.AdminAPIKey != "hunter2" {
		t.Fatalf("AdminAPIKey = %q, want hunter2", cfg.AdminAPIKey)
	}
}
