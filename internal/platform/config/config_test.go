package config

import (
	"os"
	"path/filepath"
	"testing"

	"pet-care-log/internal/platform/logger"
)

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE", "memory")
	t.Setenv("TIMEZONE", "Asia/Tokyo")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.Storage != StorageMemory {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Asia/Tokyo" {
		t.Fatalf("expected Asia/Tokyo, got %v err=%v", loc, err)
	}
}

func TestLoad_RejectsUnknownStorageAndZone(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("STORAGE", "redis")
	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown storage")
	}

	t.Setenv("STORAGE", "memory")
	t.Setenv("TIMEZONE", "Mars/Olympus")
	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for invalid timezone")
	}

	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("STORAGE", "postgres")
	t.Setenv("DB_DSN", "")
	if _, err := Load(logger.Nop()); err == nil {
		t.Fatalf("expected error for postgres without dsn")
	}
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	content := "# comentario\nexport SQLITE_PATH=\"from-file.db\"\nAPP_NAME=petlog # inline\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Chdir(sub)

	t.Setenv("STORAGE", "memory")
	t.Setenv("LOG_LEVEL", "warn")
	// t.Setenv registra el restore; vaciamos para que .env pueda setearlas.
	t.Setenv("SQLITE_PATH", "")
	os.Unsetenv("SQLITE_PATH")
	t.Setenv("APP_NAME", "")
	os.Unsetenv("APP_NAME")

	cfg, err := Load(logger.Nop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DB.SQLitePath != "from-file.db" {
		t.Fatalf("expected sqlite path from .env, got %q", cfg.DB.SQLitePath)
	}
	if cfg.Log.App != "petlog" {
		t.Fatalf("expected inline comment stripped, got %q", cfg.Log.App)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env must win over .env, got %q", cfg.Log.Level)
	}
}
