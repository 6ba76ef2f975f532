package db

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bookstore/internal/models"
)

// DefaultSeed is inserted on every start; rows whose id already exists are left alone.
var DefaultSeed = []models.Book{
	{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Quantity: 30},
	{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K. Rowling", Quantity: 40},
	{ID: 3003, Title: "The Lion, the Witch and the Wardrobe", Author: "C.S. Lewis", Quantity: 25},
	{ID: 3004, Title: "The Lord of The Rings", Author: "J.R.R Tolkien", Quantity: 37},
	{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carroll", Quantity: 12},
}

// SeedResult counts how many seed rows were actually written.
type SeedResult struct {
	Inserted int
	Total    int
}

// Summary is the message shown to the clerk after seeding.
func (r SeedResult) Summary() string {
	switch {
	case r.Total > 0 && r.Inserted == r.Total:
		return "All books have been inserted into the books table."
	case r.Inserted > 0:
		return "Some new items inserted into the books table."
	default:
		return "No new items inserted into the books table."
	}
}

// Seed inserts books with "insert if absent by id" semantics in one transaction.
func (s *Store) Seed(ctx context.Context, books []models.Book) (SeedResult, error) {
	result := SeedResult{Total: len(books)}
	if len(books) == 0 {
		return result, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	stmt, err := tx.PrepareContext(ctx, insertOrIgnore)
	if err != nil {
		return result, fmt.Errorf("seed: prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range books {
		res, err := stmt.ExecContext(ctx, b.ID, b.Title, b.Author, b.Quantity)
		if err != nil {
			return SeedResult{Total: len(books)}, fmt.Errorf("seed book %d: %w", b.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return SeedResult{Total: len(books)}, fmt.Errorf("seed book %d: %w", b.ID, err)
		}
		result.Inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return SeedResult{Total: len(books)}, fmt.Errorf("seed: commit: %w", err)
	}
	return result, nil
}

type seedFile struct {
	Books []models.Book `yaml:"books"`
}

// LoadSeedFile reads a YAML catalogue of the form
//
//	books:
//	  - id: 3001
//	    title: A Tale of Two Cities
//	    author: Charles Dickens
//	    qty: 30
func LoadSeedFile(path string) ([]models.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	seen := make(map[int64]struct{}, len(f.Books))
	for i, b := range f.Books {
		switch {
		case b.ID <= 0:
			return nil, fmt.Errorf("seed file %s: book %d: id must be positive", path, i+1)
		case strings.TrimSpace(b.Title) == "" || strings.TrimSpace(b.Author) == "":
			return nil, fmt.Errorf("seed file %s: book %d: title and author are required", path, i+1)
		case b.Quantity < 0:
			return nil, fmt.Errorf("seed file %s: book %d: qty must not be negative", path, i+1)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("seed file %s: duplicate id %d", path, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return f.Books, nil
}
