package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-devconnector/config"
	"github.com/oksasatya/go-devconnector/internal/application"
	"github.com/oksasatya/go-devconnector/internal/domain/entity"
	pginfra "github.com/oksasatya/go-devconnector/internal/infrastructure/postgres"
	"github.com/oksasatya/go-devconnector/pkg/helpers"
)

// seed creates a demo account with a profile and a first post through the
// application services, so every rule that guards the API also guards it.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, "")
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	tokens := helpers.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	auth := application.NewAuthService(users, tokens, nil, logger, cfg.AppName)
	profiles := application.NewProfileService(pginfra.NewProfileRepository(pool), users, pginfra.NewAccountRepository(pool), nil, nil, logger, cfg.AppName)
	posts := application.NewPostService(pginfra.NewPostRepository(pool), users)

	email := "demo@devconnector.dev"
	password := "password123"

	token, err := auth.Register(ctx, application.RegisterInput{Name: "Demo Developer", Email: email, Password: password})
	if errors.Is(err, application.ErrUserExists) {
		fmt.Printf("user %s already seeded\n", email)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	userID, err := tokens.Verify(token)
	if err != nil {
		log.Fatalf("failed to read seeded token: %v", err)
	}

	if _, _, err := profiles.Upsert(ctx, userID, entity.ProfileFields{
		Status:         "Developer",
		Skills:         "Go, PostgreSQL, Redis",
		Company:        "DevConnector",
		Location:       "Remote",
		Bio:            "Seeded demo account.",
		GitHubUsername: "octocat",
	}); err != nil {
		log.Fatalf("failed to seed profile: %v", err)
	}
	if _, err := profiles.AddExperience(ctx, userID, entity.Experience{
		Title: "Backend Engineer", Company: "DevConnector", From: "2020-01-01", Current: true,
	}); err != nil {
		log.Fatalf("failed to seed experience: %v", err)
	}
	if _, err := posts.Create(ctx, userID, "Hello from the seeded demo account!"); err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}

	fmt.Printf("seeded user: id=%s email=%s password=%s\ntoken (valid %s)=%s\n", userID, email, password, tokens.TTL(), token)
}
