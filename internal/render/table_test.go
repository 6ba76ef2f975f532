package render

import (
	"bytes"
	"strings"
	"testing"

	"bookstore/internal/models"
)

func TestBooks(t *testing.T) {
	var buf bytes.Buffer
	Books(&buf, []models.Book{
		{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Quantity: 30},
		{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carroll", Quantity: 12},
	})

	out := buf.String()
	for _, want := range []string{"id", "Title", "Author", "Qty", "3001", "Charles Dickens", "Alice in Wonderland", "12"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output misses %q:\n%s", want, out)
		}
	}
}

func TestBooksEmpty(t *testing.T) {
	var buf bytes.Buffer
	Books(&buf, nil)

	if !strings.Contains(buf.String(), "No books to show.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestBooksFlagsNonIntegerQuantity(t *testing.T) {
	var buf bytes.Buffer
	Books(&buf, []models.Book{
		{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", RawQuantity: "lots"},
	})

	if !strings.Contains(buf.String(), "lots (not a number)") {
		t.Fatalf("raw quantity not flagged:\n%s", buf.String())
	}
}
