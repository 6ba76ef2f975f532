package cli

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bookstore/internal/console"
	"bookstore/internal/db"
	"bookstore/internal/logging"
	"bookstore/internal/models"
	"bookstore/internal/service"
)

func runScript(t *testing.T, lines ...string) (*service.Inventory, string, *Session) {
	t.Helper()
	return runScriptAt(t, filepath.Join(t.TempDir(), "data", "ebookstore_db"), lines...)
}

// runScriptAt opens (and seeds) the database at path, then feeds lines to a session.
func runScriptAt(t *testing.T, path string, lines ...string) (*service.Inventory, string, *Session) {
	t.Helper()

	store, err := db.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, err := store.Seed(context.Background(), db.DefaultSeed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	inv := service.NewInventory(store, logging.Discard())

	var out bytes.Buffer
	in := console.NewReader(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	session := NewSession(inv, in, &out, logging.Discard())

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return inv, out.String(), session
}

func TestParseChoice(t *testing.T) {
	cases := []struct {
		in   string
		want Choice
		err  error
	}{
		{"0", ChoiceExit, nil},
		{"1", ChoiceCreate, nil},
		{" 5 ", ChoiceList, nil},
		{"6", 0, ErrUnknownChoice},
		{"42", 0, ErrUnknownChoice},
		{"-1", 0, ErrNotDigit},
		{"one", 0, ErrNotDigit},
		{"", 0, ErrNotDigit},
	}

	for _, tc := range cases {
		got, err := ParseChoice(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("ParseChoice(%q) err = %v, want %v", tc.in, err, tc.err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("ParseChoice(%q) = %v, %v", tc.in, got, err)
		}
	}
}

func TestRunRejectsBadChoices(t *testing.T) {
	_, out, session := runScript(t, "abc", "9", "0")

	if !strings.Contains(out, "Please enter the choice as a number.") {
		t.Fatalf("missing non-digit message:\n%s", out)
	}
	if !strings.Contains(out, "Incorrect entry.") {
		t.Fatalf("missing unmapped choice message:\n%s", out)
	}
	if session.State() != StateMainMenu {
		t.Fatalf("state = %v", session.State())
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	_, out, _ := runScript(t, "5")

	if !strings.Contains(out, "Alice in Wonderland") {
		t.Fatalf("list output missing:\n%s", out)
	}
}

func TestCreateFlow(t *testing.T) {
	inv, out, _ := runScript(t, "1", "Dune", "Frank Herbert", "lots", "-3", "5", "0")

	if !strings.Contains(out, "Please enter a number.") || !strings.Contains(out, "The quantity cannot be negative.") {
		t.Fatalf("quantity was not re-prompted:\n%s", out)
	}
	book, err := inv.Get(context.Background(), 3006)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if book != (models.Book{ID: 3006, Title: "Dune", Author: "Frank Herbert", Quantity: 5}) {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestCreateCancel(t *testing.T) {
	inv, out, _ := runScript(t, "1", "-1", "1", "Dune", "-1", "0")

	if strings.Count(out, "Going back to main menu.") != 2 {
		t.Fatalf("expected two cancels:\n%s", out)
	}
	if n, _ := inv.Store().Count(context.Background()); n != 5 {
		t.Fatalf("store size = %d", n)
	}
}

func TestUpdateFlow(t *testing.T) {
	inv, out, _ := runScript(t,
		"2",
		"9999",
		"3005",
		"id",
		"isbn",
		"qty",
		"many",
		"15",
		"0",
	)

	for _, want := range []string{"No item with value 9999 in id.", "You cannot modify the id.", "Invalid column.", "Qty has been updated to 15"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}

	book, err := inv.Get(context.Background(), 3005)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if book.Quantity != 15 || book.ID != 3005 || book.Title != "Alice in Wonderland" {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestUpdateTitle(t *testing.T) {
	inv, _, _ := runScript(t, "2", "3001", "title", "Great Expectations", "0")

	book, _ := inv.Get(context.Background(), 3001)
	if book.Title != "Great Expectations" || book.Author != "Charles Dickens" {
		t.Fatalf("unexpected book: %+v", book)
	}
}

func TestDeleteFlow(t *testing.T) {
	inv, out, _ := runScript(t, "3", "3002", "3", "-1", "0")

	if !strings.Contains(out, "The book with id 3002 has been deleted.") {
		t.Fatalf("missing delete confirmation:\n%s", out)
	}
	if !strings.Contains(out, "Going back to main menu.") {
		t.Fatalf("missing cancel message:\n%s", out)
	}
	if n, _ := inv.Store().Count(context.Background()); n != 4 {
		t.Fatalf("store size = %d", n)
	}
}

func TestSearchFlow(t *testing.T) {
	_, out, _ := runScript(t, "4", "publisher", "author", "C.S. Lewis", "0")

	if !strings.Contains(out, "No such column.") {
		t.Fatalf("bad column was accepted:\n%s", out)
	}
	if !strings.Contains(out, "The Lion, the Witch and the Wardrobe") {
		t.Fatalf("search result missing:\n%s", out)
	}
	if strings.Contains(out, "A Tale of Two Cities") {
		t.Fatalf("search returned unrelated rows:\n%s", out)
	}
}

func TestCancelAtEveryUpdateAndSearchStep(t *testing.T) {
	inv, out, session := runScript(t,
		"2", "3001", "-1",
		"2", "3001", "title", "-1",
		"4", "-1",
		"0",
	)

	if got := strings.Count(out, "Going back to main menu."); got != 3 {
		t.Fatalf("got %d cancels, want 3:\n%s", got, out)
	}
	if session.State() != StateMainMenu {
		t.Fatalf("state = %v", session.State())
	}

	book, err := inv.Get(context.Background(), 3001)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if book != db.DefaultSeed[0] {
		t.Fatalf("book changed after cancel: %+v", book)
	}
}

func TestListAndSearchLegacyQuantity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "ebookstore_db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	for _, stmt := range []string{
		`CREATE TABLE books(id INTEGER PRIMARY KEY, Title TEXT, Author TEXT, Qty INTEGER)`,
		`INSERT INTO books VALUES (3001, 'A Tale of Two Cities', 'Charles Dickens', 'lots')`,
	} {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	raw.Close()

	_, out, session := runScriptAt(t, path, "5", "4", "author", "Charles Dickens", "0")

	if got := strings.Count(out, "lots (not a number)"); got != 2 {
		t.Fatalf("flagged quantity shown %d times, want 2:\n%s", got, out)
	}
	if !strings.Contains(out, "Alice in Wonderland") {
		t.Fatalf("seeded rows missing from list:\n%s", out)
	}
	if session.State() != StateMainMenu {
		t.Fatalf("state = %v", session.State())
	}
}
