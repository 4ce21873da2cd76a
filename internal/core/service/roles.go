package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-management-api/internal/core/domain"
	"github.com/contactdesk/contact-management-api/internal/core/ports"
)

// SeedRoles ensures the ADMIN and USER role definitions exist. It runs once
// before the server starts accepting traffic and is idempotent: existing
// roles are left untouched.
func SeedRoles(ctx context.Context, repo ports.RoleRepository, log zerolog.Logger) error {
	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		_, err := repo.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRoleNotFound) {
			return fmt.Errorf("seed roles: lookup %s: %w", name, err)
		}
		if _, err := repo.Save(ctx, &domain.Role{Name: name}); err != nil {
			return fmt.Errorf("seed roles: create %s: %w", name, err)
		}
		log.Info().Str("role", name).Msg("role seeded")
	}
	return nil
}
