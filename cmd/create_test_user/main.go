package main

import (
	"context"
	"errors"
	"log"
	"os"

	"kanban_backend/internal/db"
	"kanban_backend/internal/domain"
	"kanban_backend/internal/repository"
	"kanban_backend/internal/service"

	"github.com/joho/godotenv"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()

	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	if err := service.InitJWT(os.Getenv("JWT_SECRET")); err != nil {
		log.Fatal(err)
	}

	email := envOr("TEST_USER_EMAIL", "tester@example.com")
	name := envOr("TEST_USER_NAME", "Tester")
	password := envOr("TEST_USER_PASSWORD", "password123")

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	auth := service.NewAuthService(repository.NewUserRepository(pool))

	// register, or log in when the address is taken
	u, token, err := auth.Register(ctx, email, name, password)
	var ve *domain.ValidationError
	switch {
	case err == nil:
		log.Printf("user created id=%d\n", u.ID)
	case errors.As(err, &ve) && ve.Field == "email":
		u, token, err = auth.Login(ctx, email, password)
		if err != nil {
			log.Fatalf("user %s exists but login failed: %v", email, err)
		}
		log.Printf("user already exists id=%d\n", u.ID)
	default:
		log.Fatalf("create user failed: %v", err)
	}

	log.Printf("email=%s name=%s created_at=%v\n", u.Email, u.Name, u.CreatedAt)
	log.Printf("token=%s\n", token)
}
