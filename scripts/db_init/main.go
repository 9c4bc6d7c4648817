package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	dbfs "github.com/garnizeh/bectrack/db"
	"github.com/garnizeh/bectrack/internal/config"
	"github.com/garnizeh/bectrack/internal/db"
	"github.com/garnizeh/bectrack/internal/repository/sqlite"
	"github.com/garnizeh/bectrack/internal/seed"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	noSeed := flag.Bool("no-seed", false, "Only run migrations")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	if !*noSeed {
		store := sqlite.New(database, nil)
		empty, err := seed.Empty(ctx, store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
			os.Exit(1)
		}
		if empty {
			if err := seed.Load(ctx, store, time.Now().UTC()); err != nil {
				fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Sample data loaded.")
		}
	}

	fmt.Printf("Database %s initialized successfully.\n", cfg.DatabasePath)
}
