package parser

import (
	"strings"
	"testing"

	"bookstore/internal/models"
)

func TestParseStockListTable(t *testing.T) {
	html := `<html><body>
<table>
  <tr><th>Title</th><th>Author</th><th>Qty</th></tr>
  <tr><td>Dune</td><td>Frank   Herbert</td><td> 5 </td></tr>
  <tr><td>Emma</td><td>Jane Austen</td><td>0</td></tr>
</table>
</body></html>`

	books, err := ParseStockList(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []models.Book{
		{Title: "Dune", Author: "Frank Herbert", Quantity: 5},
		{Title: "Emma", Author: "Jane Austen", Quantity: 0},
	}
	if len(books) != len(want) {
		t.Fatalf("got %d books: %+v", len(books), books)
	}
	for i := range want {
		if books[i] != want[i] {
			t.Fatalf("book %d = %+v, want %+v", i, books[i], want[i])
		}
	}
}

func TestParseStockListItems(t *testing.T) {
	html := `<ul>
<li class="book"><span class="title">Beloved</span> by <span class="author">Toni Morrison</span> <b class="qty">3</b></li>
<li>not a book</li>
</ul>`

	books, err := ParseStockList(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(books) != 1 || books[0].Author != "Toni Morrison" || books[0].Quantity != 3 {
		t.Fatalf("unexpected books: %+v", books)
	}
}

func TestParseStockListBadQuantity(t *testing.T) {
	html := `<table><tr><td>Dune</td><td>Frank Herbert</td><td>many</td></tr></table>`

	if _, err := ParseStockList(strings.NewReader(html)); err == nil {
		t.Fatal("expected error for non-numeric quantity")
	}
}
