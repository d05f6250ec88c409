package main

import (
	"fmt"
	"os"
	"strconv"

	"tennis-stats-api/config"
	"tennis-stats-api/migrations"
	"tennis-stats-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadForTools()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
		os.Exit(1)
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	if len(os.Args) < 2 {
		printUsage()
		return
	}

	db := config.MustConnectDatabase(cfg, log)
	migrator, err := migrations.NewMigrator(db, log.WithField("component", "migrator"))
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise migrator")
	}
	migrator.AddMigrations(migrations.GetAllMigrations())

	switch command := os.Args[1]; command {
	case "migrate":
		if err := migrator.Migrate(); err != nil {
			log.WithError(err).Fatal("Migration failed")
		}
	case "rollback":
		steps := 1
		if len(os.Args) > 2 {
			if s, err := strconv.Atoi(os.Args[2]); err == nil {
				steps = s
			}
		}
		if err := migrator.Rollback(steps); err != nil {
			log.WithError(err).Fatal("Rollback failed")
		}
	case "status":
		if err := showStatus(migrator); err != nil {
			log.WithError(err).Fatal("Failed to read migration status")
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/migrate migrate          - Run pending migrations")
	fmt.Println("  go run ./cmd/migrate rollback [steps] - Rollback migrations (default: 1)")
	fmt.Println("  go run ./cmd/migrate status           - Show migration status")
}

func showStatus(migrator *migrations.Migrator) error {
	applied, err := migrator.Applied()
	if err != nil {
		return err
	}
	pending, err := migrator.Pending()
	if err != nil {
		return err
	}

	fmt.Println("Migration Status:")
	fmt.Println("================")
	for _, m := range applied {
		fmt.Printf("✓ %s (batch %d, %s)\n", m.Name, m.Batch, m.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	for _, name := range pending {
		fmt.Printf("  %s (pending)\n", name)
	}
	if len(applied) == 0 && len(pending) == 0 {
		fmt.Println("No migrations registered.")
	}
	return nil
}
