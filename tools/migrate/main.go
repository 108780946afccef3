package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/orgball2608/wallify-bot/internal/migrations"
	"github.com/orgball2608/wallify-bot/pkg/config"
	"github.com/pressly/goose/v3"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|status|reset|create <name>]")
	}

	command := os.Args[1]

	if command == "create" {
		if len(os.Args) < 3 {
			log.Fatal("Usage: migrate create <name>")
		}
		if err := goose.Create(nil, migrations.Dir, os.Args[2], "go"); err != nil {
			log.Fatalf("Failed to create migration: %v", err)
		}
		return
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := migrations.Open(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	fmt.Printf("Running migrations from: %s\n", migrations.Dir)

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		fmt.Println("Migrations applied successfully")
	case "down":
		if err := goose.DownContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to rollback migration: %v", err)
		}
		fmt.Println("Migration rollback successful")
	case "status":
		if err := goose.StatusContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to get migration status: %v", err)
		}
	case "reset":
		if err := goose.ResetContext(ctx, db, migrations.Dir); err != nil {
			log.Fatalf("Failed to reset migrations: %v", err)
		}
		fmt.Println("All migrations have been rolled back")
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
