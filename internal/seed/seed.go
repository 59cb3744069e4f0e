// Package seed provisions the bootstrap admin account from
// configuration. Admin accounts have no registration endpoint.
package seed

import (
	"context"
	"fmt"

	"github.com/emre/schoolrecords/internal/app/models"
	"github.com/emre/schoolrecords/internal/app/repositories"
	"github.com/emre/schoolrecords/internal/config"
	"github.com/emre/schoolrecords/internal/pkg/auth"
	"github.com/emre/schoolrecords/internal/pkg/logger"
	"github.com/emre/schoolrecords/internal/pkg/validation"
)

// CreateDefaultAdmin inserts the configured admin account if it does
// not already exist. A blank admin email disables seeding.
func CreateDefaultAdmin(ctx context.Context, cfg *config.Config, admins *repositories.AdminRepository, hasher *auth.PasswordHasher) error {
	if cfg.Admin.Email == "" {
		logger.Debug().Msg("No admin account configured, skipping seed")
		return nil
	}

	email := validation.NormalizeEmail(cfg.Admin.Email)
	if !validation.IsValidEmail(email) {
		return fmt.Errorf("configured admin email %q is not a valid address", cfg.Admin.Email)
	}
	if !validation.IsValidPassword(cfg.Admin.Password) {
		return fmt.Errorf("configured admin password does not meet the password policy")
	}

	exists, err := admins.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	if exists {
		logger.Debug().Str("email", email).Msg("Admin account already exists, skipping seed")
		return nil
	}

	hashed, err := hasher.Hash(ctx, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.Admin{Email: email, Password: hashed}
	if _, err := admins.Insert(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info().Str("email", email).Msg("Default admin account created")
	return nil
}
