package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"tasktracker/internal/db"
	"tasktracker/internal/logger"
	"tasktracker/internal/repository"
	"tasktracker/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "account email (defaults to ADMIN_EMAIL)")
	password := flag.String("password", "", "account password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create_user -email <email> -password <password>")
		os.Exit(2)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	mode := strings.ToLower(os.Getenv("PASSWORD_MODE"))
	passwords, err := service.NewPasswordVerifier(mode)
	if err != nil {
		logger.Fatal("password mode", "error", err)
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", "error", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(pool), passwords)
	u, err := auth.Register(ctx, *email, *password)
	if errors.Is(err, service.ErrDuplicateEmail) {
		existing, err := repository.NewUserRepository(pool).GetByEmail(ctx, *email)
		if err != nil {
			logger.Fatal("get user", "error", err)
		}
		fmt.Printf("user already exists id=%d email=%s\n", existing.ID, existing.Email)
		return
	}
	if err != nil {
		logger.Fatal("create user failed", "error", err)
	}
	fmt.Printf("user created id=%d email=%s\n", u.ID, u.Email)
}
