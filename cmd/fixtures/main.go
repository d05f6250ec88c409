package main

import (
	"fmt"
	"os"
	"time"

	"tennis-stats-api/config"
	"tennis-stats-api/fixtures"
	"tennis-stats-api/pkg/logger"
)

const seed = 20240101

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
	fixtureManager := fixtures.NewFixtures(db, log.WithField("component", "fixtures"), seed, time.Now().UTC())

	switch command := os.Args[1]; command {
	case "generate":
		if _, err := fixtureManager.GenerateTestData(); err != nil {
			log.WithError(err).Fatal("Failed to generate fixtures")
		}
		fmt.Printf("Fixtures generated. Demo profile: %s\n", fixtures.DemoProfileID)
	case "clear":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.WithError(err).Fatal("Failed to clear fixtures")
		}
		fmt.Println("All fixture data cleared")
	case "regenerate":
		if err := fixtureManager.ClearAllData(); err != nil {
			log.WithError(err).Fatal("Failed to clear fixtures")
		}
		if _, err := fixtureManager.GenerateTestData(); err != nil {
			log.WithError(err).Fatal("Failed to generate fixtures")
		}
		fmt.Printf("Fixtures regenerated. Demo profile: %s\n", fixtures.DemoProfileID)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/fixtures generate    - Generate a demo team (8 players, 30 matches with set statistics)")
	fmt.Println("  go run ./cmd/fixtures clear       - Clear all fixture data")
	fmt.Println("  go run ./cmd/fixtures regenerate  - Clear and regenerate all data")
}
