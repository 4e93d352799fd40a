package auth

import (
	"errors"
	"fmt"
	"log"

	"github.com/reelkeep/reelkeep/internal/models"
	"github.com/reelkeep/reelkeep/internal/repository"
)

// SeedUsers creates the admin and demo accounts if they do not exist yet.
// Run once at startup, after migrations.
func SeedUsers(users repository.UserStore) error {
	seeds := []struct {
		username string
		email    string
		password string
		role     models.UserRole
	}{
		{"admin", "admin@example.com", "admin", models.RoleAdmin},
		{"user", "user@example.com", "user", models.RoleUser},
	}

	for _, s := range seeds {
		_, err := users.GetByUsername(s.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", s.username, err)
		}

		hash, err := HashPassword(s.password)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", s.username, err)
		}
		user := &models.User{
			Username:     s.username,
			Email:        s.email,
			PasswordHash: hash,
			Role:         s.role,
			IsActive:     true,
		}
		if err := users.Create(user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			return fmt.Errorf("failed to create user %s: %w", s.username, err)
		}
		log.Printf("created %s user: %s", s.role, s.username)
	}
	return nil
}
