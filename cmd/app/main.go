package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"bookstore/internal/cli"
	"bookstore/internal/config"
	"bookstore/internal/console"
	"bookstore/internal/db"
	"bookstore/internal/logging"
	"bookstore/internal/models"
	"bookstore/internal/parser"
	"bookstore/internal/service"
)

func main() {
	importPath := flag.String("import", "", "HTML stock list to import after start-up")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	logger := logging.New(cfg.Logging, os.Stderr)
	ctx := context.Background()

	// 2. Database: directory, table, initial books
	store, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	logger.Info("database opened", "path", cfg.DBPath)

	seed := db.DefaultSeed
	if cfg.SeedFile != "" {
		seed, err = db.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			store.Close()
			log.Fatalf("Seed file error: %v", err)
		}
	}

	res, err := store.Seed(ctx, seed)
	if err != nil {
		store.Close()
		log.Fatalf("Seed error: %v", err)
	}
	logger.Info("seed finished", "inserted", res.Inserted, "total", res.Total)
	fmt.Println("\n" + res.Summary())

	// 3. Service (business logic)
	inv := service.NewInventory(store, logger)

	if *importPath != "" {
		if err := importStock(ctx, inv, *importPath); err != nil {
			store.Close()
			log.Fatalf("Import error: %v", err)
		}
	}

	// 4. Console and menu
	completions := []string{service.CancelToken}
	for _, c := range models.Columns {
		completions = append(completions, c.String())
	}
	con, err := console.New(console.Options{
		HistoryFile:   cfg.HistoryFile,
		InterruptLine: service.CancelToken,
		Completions:   completions,
	})
	if err != nil {
		store.Close()
		log.Fatalf("Console error: %v", err)
	}

	session := cli.NewSession(inv, con, con.Out(), logger)

	// Run blocks until choice 0 is picked or the input ends.
	runErr := session.Run(ctx)
	con.Close()

	if err := store.Close(); err != nil {
		logger.Error("closing database", "error", err)
	} else {
		fmt.Println("\nConnection to the database closed.")
	}

	if runErr != nil {
		log.Fatalf("Storage failure: %v", runErr)
	}
	fmt.Println("\nProgram now exiting, goodbye!")
}

func importStock(ctx context.Context, inv *service.Inventory, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	books, err := parser.ParseStockList(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	n, err := inv.Import(ctx, books)
	if err != nil {
		return err
	}
	fmt.Printf("\nImported %d of %d books from %s.\n", n, len(books), path)
	return nil
}
