// Seed loads a development dataset: one admin account and a couple of
// sample listings. Safe to re-run; existing records are left alone.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	propertyrepository "github.com/shayzimm/yallambee-booking-app-backend/internal/properties/repository"
	usererrors "github.com/shayzimm/yallambee-booking-app-backend/internal/users/errors"
	userrepository "github.com/shayzimm/yallambee-booking-app-backend/internal/users/repository"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/config"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/model"
)

const JobName = "seed"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Seeding development data")

	seedAdmin(ctx, cfg)
	seedProperties(ctx, cfg)

	cfg.Log.Info("Seeding finished")
}

func seedAdmin(ctx context.Context, cfg *config.Config) {
	repo := userrepository.NewMongoUserRepository(cfg)

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		cfg.Log.Fatal("Failed to hash admin password", "error", err)
	}

	admin := &model.User{
		Username:     "admin",
		Email:        "admin@yallambeetinyhomes.com",
		FirstName:    "Site",
		LastName:     "Admin",
		PasswordHash: string(hash),
		IsAdmin:      true,
	}

	if err := repo.Create(ctx, admin); err != nil {
		if errors.Is(err, usererrors.ErrEmailTaken) {
			cfg.Log.Info("Admin account already exists, skipping")
			return
		}
		cfg.Log.Fatal("Failed to seed admin account", "error", err)
	}
	cfg.Log.Info("Admin account created", "id", admin.ID, "email", admin.Email)
}

func seedProperties(ctx context.Context, cfg *config.Config) {
	repo := propertyrepository.NewMongoPropertyRepository(cfg)

	existing, err := repo.Count(ctx)
	if err != nil {
		cfg.Log.Fatal("Failed to count properties", "error", err)
	}
	if existing > 0 {
		cfg.Log.Info("Properties already present, skipping", "count", existing)
		return
	}

	properties := []*model.Property{
		{
			Name:        "Yallambee",
			Description: "Off-grid tiny home set on 100 acres of bushland with valley views.",
			Price:       250,
			Location:    model.Location{City: "Mudgee", State: "NSW"},
		},
		{
			Name:        "The Saddle Camp",
			Description: "Secluded creekside tiny home, a short drive from town with room for two.",
			Price:       220,
			Location:    model.Location{City: "Braidwood", State: "NSW"},
		},
	}

	for _, p := range properties {
		if err := repo.Create(ctx, p); err != nil {
			cfg.Log.Fatal("Failed to seed property", "name", p.Name, "error", err)
		}
		cfg.Log.Info("Property created", "id", p.ID, "name", p.Name)
	}
}
