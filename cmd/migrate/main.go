package main

import (
	"log"

	"keepwise-be/internal/config"
	"keepwise-be/internal/migrations"
	"keepwise-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	driver := cfg.Store.Driver
	if driver == "redis" {
		color.Yellow("The redis document store has no schema; nothing to migrate.")
		return
	}
	if driver == "sqlite" && cfg.Store.DSN != "" {
		driver = "postgres"
	}

	db, err := database.NewGormDB(driver, cfg.Store.DSN, cfg.Store.SQLitePath)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	log.Printf("Running migrations against %s store...", driver)
	if err := migrations.Run(db); err != nil {
		log.Fatalf("Error: Migration failed: %v", err)
	}

	color.Green("Database migration completed successfully.")
}
