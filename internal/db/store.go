package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bookstore/internal/models"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("book not found")

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty SQLite path")
	}

	// Create the directory if needed; the driver creates the file itself.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection for the whole process: a single reader/writer, and the PRAGMAs live on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragma := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}

	for _, stmt := range pragma {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("pragma: %w", err)
		}
	}
	return nil
}

// migrate never drops anything: an existing books table is kept as is.
func migrate(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY,
	Title TEXT NOT NULL,
	Author TEXT NOT NULL,
	Qty INTEGER NOT NULL CHECK (Qty >= 0)
);
`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return n, nil
}

// CountWhere returns how many rows hold value in col.
func (s *Store) CountWhere(ctx context.Context, col models.Column, value any) (int, error) {
	query, err := lookup(countWhere, col)
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, value).Scan(&n); err != nil {
		return 0, fmt.Errorf("count books by %s: %w", col, err)
	}
	return n, nil
}

// MaxID returns the largest id in the table; ok is false for an empty table.
func (s *Store) MaxID(ctx context.Context) (id int64, ok bool, err error) {
	var maxID sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(id) FROM books`).Scan(&maxID); err != nil {
		return 0, false, fmt.Errorf("max id: %w", err)
	}
	return maxID.Int64, maxID.Valid, nil
}

// Insert adds a book unless its id is already taken. inserted is false when
// the row was ignored.
func (s *Store) Insert(ctx context.Context, b models.Book) (inserted bool, err error) {
	res, err := s.db.ExecContext(ctx, insertOrIgnore, b.ID, b.Title, b.Author, b.Quantity)
	if err != nil {
		return false, fmt.Errorf("insert book %d: %w", b.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert book %d: %w", b.ID, err)
	}
	return n == 1, nil
}

func (s *Store) Get(ctx context.Context, id int64) (models.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, selectWhere[models.ColumnID], id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, ErrNotFound
		}
		return models.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

// FindBy returns every row whose col equals value, ordered by id.
func (s *Store) FindBy(ctx context.Context, col models.Column, value any) ([]models.Book, error) {
	query, err := lookup(selectWhere, col)
	if err != nil {
		return nil, err
	}
	return s.queryBooks(ctx, query, value)
}

func (s *Store) List(ctx context.Context) ([]models.Book, error) {
	return s.queryBooks(ctx, selectAll)
}

// UpdateField sets col of the book with the given id and returns the number
// of rows affected. The id column has no template and is rejected.
func (s *Store) UpdateField(ctx context.Context, id int64, col models.Column, value any) (int64, error) {
	query, err := lookup(updateByID, col)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return 0, fmt.Errorf("update %s of book %d: %w", col, id, err)
	}
	return res.RowsAffected()
}

// DeleteWhere removes rows whose col equals value and returns how many went.
func (s *Store) DeleteWhere(ctx context.Context, col models.Column, value any) (int64, error) {
	query, err := lookup(deleteWhere, col)
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, query, value)
	if err != nil {
		return 0, fmt.Errorf("delete books by %s: %w", col, err)
	}
	return res.RowsAffected()
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return books, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanBook reads id, Title, Author, Qty. Tables created by older versions of
// the program have no constraints, so NULL text and non-integer Qty values
// are tolerated instead of failing the whole query.
func scanBook(row rowScanner) (models.Book, error) {
	var (
		b      models.Book
		title  sql.NullString
		author sql.NullString
		qty    any
	)
	if err := row.Scan(&b.ID, &title, &author, &qty); err != nil {
		return models.Book{}, err
	}
	b.Title = title.String
	b.Author = author.String

	switch v := qty.(type) {
	case int64:
		b.Quantity = v
	case float64:
		if v == math.Trunc(v) {
			b.Quantity = int64(v)
		} else {
			b.RawQuantity = strconv.FormatFloat(v, 'f', -1, 64)
		}
	case string:
		setQuantity(&b, v)
	case []byte:
		setQuantity(&b, string(v))
	case nil:
		b.RawQuantity = "NULL"
	default:
		b.RawQuantity = fmt.Sprint(v)
	}
	return b, nil
}

func setQuantity(b *models.Book, text string) {
	if n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
		b.Quantity = n
		return
	}
	if text == "" {
		text = `""`
	}
	b.RawQuantity = text
}
