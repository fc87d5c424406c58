package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"bus_logistics/internal/models"
	"bus_logistics/internal/repository"
)

// SeedRoles makes sure every role in the closed enumeration exists.
// Idempotent; run once at startup before the server accepts traffic.
func SeedRoles(ctx context.Context, repo repository.Repository) error {
	for _, name := range models.AllRoleNames() {
		existing, err := repo.Roles().FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := repo.Roles().Create(ctx, &models.Role{Name: name}); err != nil {
			return err
		}
		logrus.WithField("role", name).Info("seeded role")
	}
	return nil
}
