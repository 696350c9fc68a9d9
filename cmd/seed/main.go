package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hbnb/hbnb-api/config"
	"github.com/hbnb/hbnb-api/internal/domain/entity"
	"github.com/hbnb/hbnb-api/internal/domain/repository"
	pginfra "github.com/hbnb/hbnb-api/internal/infrastructure/postgres"
	"github.com/hbnb/hbnb-api/pkg/helpers"
)

var baseAmenities = []string{"WiFi", "Air conditioning", "Swimming pool", "Parking", "Kitchen"}

// Seeds the bootstrap admin account and a base amenity catalog. Safe to run
// repeatedly: existing rows are left untouched.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD must be set to seed the admin account")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	amenities := pginfra.NewAmenityRepository(pool)

	// Stored emails are lowercase; match that or the existence check misses.
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	if _, err := users.GetByEmail(ctx, adminEmail); err == nil {
		logger.Infof("admin %s already exists", adminEmail)
	} else if errors.Is(err, repository.ErrNotFound) {
		hash, err := helpers.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}
		admin, err := entity.NewUser("Admin", "HBnB", adminEmail, hash, true)
		if err != nil {
			log.Fatalf("invalid admin account: %v", err)
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		logger.Infof("created admin %s (%s)", adminEmail, admin.ID)
	} else {
		log.Fatalf("failed to look up admin: %v", err)
	}

	existing, err := amenities.List(ctx)
	if err != nil {
		log.Fatalf("failed to list amenities: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.Name] = true
	}
	for _, name := range baseAmenities {
		if have[name] {
			continue
		}
		a, err := entity.NewAmenity(name)
		if err != nil {
			log.Fatalf("invalid amenity %q: %v", name, err)
		}
		if err := amenities.Create(ctx, a); err != nil {
			log.Fatalf("failed to create amenity %q: %v", name, err)
		}
		logger.Infof("created amenity %q (%s)", name, a.ID)
	}

	logger.Info("seed complete")
}
