// Command db_test checks that the configured database is reachable and its
// schema can be created.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/database"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store database.Store
	switch {
	case cfg.Database.URL != "":
		fmt.Println("Attempting to connect to PostgreSQL...")
		store, err = database.ConnectDB(ctx, cfg.Database.URL)
	case cfg.Database.SQLitePath != "":
		fmt.Printf("Opening SQLite database at %s...\n", cfg.Database.SQLitePath)
		store, err = database.OpenSQLite(ctx, cfg.Database.SQLitePath)
	default:
		fmt.Fprintln(os.Stderr, "Neither DATABASE_URL nor SQLITE_PATH is set. Please check your .env file.")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to connect to the database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Schema creation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Database reachable and schema in place!")
}
