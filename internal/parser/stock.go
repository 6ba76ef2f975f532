package parser

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"bookstore/internal/models"
)

var spaceRe = regexp.MustCompile(`\s+`)

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s.Text(), " "))
}

// ParseStockList reads an HTML stock list and returns the books in it.
//
// Two layouts are understood:
//   - table rows with three cells: title, author, quantity (header rows built from <th> are skipped);
//   - list items marked up as <li class="book"> with .title, .author and .qty children.
//
// Ids are not read: the inventory assigns them on import.
func ParseStockList(body io.Reader) ([]models.Book, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("read HTML: %w", err)
	}

	var (
		books    []models.Book
		parseErr error
	)

	doc.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}

		book, err := newBook(
			cellText(cells.Eq(0)),
			cellText(cells.Eq(1)),
			cellText(cells.Eq(2)),
		)
		if err != nil {
			parseErr = fmt.Errorf("table row %d: %w", i+1, err)
			return false
		}
		books = append(books, book)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	doc.Find("li.book").EachWithBreak(func(i int, item *goquery.Selection) bool {
		book, err := newBook(
			cellText(item.Find(".title").First()),
			cellText(item.Find(".author").First()),
			cellText(item.Find(".qty").First()),
		)
		if err != nil {
			parseErr = fmt.Errorf("list item %d: %w", i+1, err)
			return false
		}
		books = append(books, book)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return books, nil
}

func newBook(title, author, qty string) (models.Book, error) {
	if title == "" || author == "" {
		return models.Book{}, fmt.Errorf("title and author are required")
	}

	n, err := strconv.ParseInt(qty, 10, 64)
	if err != nil || n < 0 {
		return models.Book{}, fmt.Errorf("quantity %q is not a non-negative number", qty)
	}

	return models.Book{
		Title:    title,
		Author:   author,
		Quantity: n,
	}, nil
}
