package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/emre/schoolrecords/internal/config"
)

func TestBuildDependenciesWiring(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.StoragePath = filepath.Join(t.TempDir(), "uploads")
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.TokenExpiration = "24h"
	cfg.JWT.Issuer = "test"
	// No admin configured: seeding skips without a database round-trip,
	// so the graph builds against a nil pool.

	deps, err := BuildDependencies(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("BuildDependencies: %v", err)
	}

	if deps.PasswordHasher == nil {
		t.Error("no password hasher")
	}
	if deps.JWTService == nil {
		t.Error("no JWT service")
	}
	if deps.AuthService == nil || deps.StudentService == nil || deps.ProfileService == nil {
		t.Error("service graph incomplete")
	}
	if deps.StudentController == nil || deps.AdminController == nil || deps.AuthMiddleware == nil {
		t.Error("controller graph incomplete")
	}
	if deps.FileStorage == nil {
		t.Error("no file storage")
	}
}
