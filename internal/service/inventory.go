package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"bookstore/internal/db"
	"bookstore/internal/models"
)

// FirstID is assigned when the table has been emptied completely.
const FirstID int64 = 3001

// Inventory implements the record operations over the books table.
type Inventory struct {
	store *db.Store
	log   *slog.Logger
}

func NewInventory(store *db.Store, logger *slog.Logger) *Inventory {
	return &Inventory{
		store: store,
		log:   logger.With("component", "inventory"),
	}
}

// Store exposes the backend, e.g. as a Lookup for a Verifier.
func (s *Inventory) Store() *db.Store {
	return s.store
}

// NextID is max(id)+1.
func (s *Inventory) NextID(ctx context.Context) (int64, error) {
	maxID, ok, err := s.store.MaxID(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return FirstID, nil
	}
	return maxID + 1, nil
}

// Create stores a new book under the next free id. inserted is false when
// the insert was ignored because the id was taken meanwhile.
func (s *Inventory) Create(ctx context.Context, title, author string, qty int64) (book models.Book, inserted bool, err error) {
	if qty < 0 {
		return models.Book{}, false, ErrNegative
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(author) == "" {
		return models.Book{}, false, ErrEmptyValue
	}

	id, err := s.NextID(ctx)
	if err != nil {
		return models.Book{}, false, err
	}

	book = models.Book{
		ID:       id,
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		Quantity: qty,
	}

	inserted, err = s.store.Insert(ctx, book)
	if err != nil {
		return models.Book{}, false, err
	}
	if !inserted {
		s.log.Warn("insert ignored, id already taken", "id", id)
		return book, false, nil
	}

	s.log.Info("book created", "id", id, "title", book.Title)
	return book, true, nil
}

// Update changes one field of the book with the given id. The id column is
// refused before any query runs. updated is true only when exactly one row changed.
func (s *Inventory) Update(ctx context.Context, id int64, col models.Column, value any) (book models.Book, updated bool, err error) {
	if col == models.ColumnID {
		return models.Book{}, false, ErrImmutableColumn
	}
	if !col.Valid() {
		return models.Book{}, false, ErrUnknownColumn
	}

	switch v := value.(type) {
	case int64:
		if col != models.ColumnQuantity {
			return models.Book{}, false, fmt.Errorf("column %s takes text", col)
		}
		if v < 0 {
			return models.Book{}, false, ErrNegative
		}
	case string:
		if col == models.ColumnQuantity {
			return models.Book{}, false, ErrNotANumber
		}
		if strings.TrimSpace(v) == "" {
			return models.Book{}, false, ErrEmptyValue
		}
		value = strings.TrimSpace(v)
	default:
		return models.Book{}, false, fmt.Errorf("unsupported value type %T", value)
	}

	n, err := s.store.UpdateField(ctx, id, col, value)
	if err != nil {
		return models.Book{}, false, err
	}
	if n != 1 {
		s.log.Warn("update affected unexpected row count", "id", id, "column", col.String(), "rows", n)
		return models.Book{}, false, nil
	}

	book, err = s.store.Get(ctx, id)
	if err != nil {
		return models.Book{}, false, fmt.Errorf("reload book %d: %w", id, err)
	}

	s.log.Info("book updated", "id", id, "column", col.String())
	return book, true, nil
}

// Delete removes the row matched by col/value. deleted is true only when
// exactly one row went away.
func (s *Inventory) Delete(ctx context.Context, col models.Column, value any) (deleted bool, err error) {
	n, err := s.store.DeleteWhere(ctx, col, value)
	if err != nil {
		return false, err
	}
	if n != 1 {
		s.log.Warn("delete affected unexpected row count", "column", col.String(), "value", value, "rows", n)
		return false, nil
	}

	s.log.Info("book deleted", "column", col.String(), "value", value)
	return true, nil
}

// Search returns all rows whose col equals value.
func (s *Inventory) Search(ctx context.Context, col models.Column, value any) ([]models.Book, error) {
	return s.store.FindBy(ctx, col, value)
}

func (s *Inventory) List(ctx context.Context) ([]models.Book, error) {
	return s.store.List(ctx)
}

// Get returns the book with id, or db.ErrNotFound.
func (s *Inventory) Get(ctx context.Context, id int64) (models.Book, error) {
	return s.store.Get(ctx, id)
}

// Import creates each book under a freshly assigned id and returns how many
// were stored. Ids carried by the input are ignored.
func (s *Inventory) Import(ctx context.Context, books []models.Book) (int, error) {
	var created int
	for _, b := range books {
		_, inserted, err := s.Create(ctx, b.Title, b.Author, b.Quantity)
		if err != nil {
			if errors.Is(err, ErrNegative) || errors.Is(err, ErrEmptyValue) {
				s.log.Warn("import skipped invalid book", "title", b.Title, "error", err)
				continue
			}
			return created, fmt.Errorf("import %q: %w", b.Title, err)
		}
		if inserted {
			created++
		}
	}
	return created, nil
}
