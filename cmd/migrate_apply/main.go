package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tasktracker/internal/db"
	"tasktracker/internal/logger"
	"tasktracker/internal/migrations"

	"github.com/joho/godotenv"
)

func main() {
	apply := flag.Bool("apply", false, "apply migrations")
	flag.Parse()

	_ = godotenv.Load()

	all, err := migrations.All()
	if err != nil {
		logger.Fatal("load migrations", "error", err)
	}

	if !*apply {
		for _, m := range all {
			fmt.Println(m.Name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		logger.Fatal("migrate", "error", err)
	}
	fmt.Printf("applied %d migrations\n", len(all))
}
