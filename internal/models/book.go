package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Book is the only entity of the catalog: one row of the books table.
type Book struct {
	ID       int64  `yaml:"id"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Quantity int64  `yaml:"qty"`

	// RawQuantity holds the stored Qty when it is not an integer (rows
	// written by older versions of the program). Quantity is 0 then.
	RawQuantity string `yaml:"-"`
}

// QuantityText is the Qty cell as it should be shown.
func (b Book) QuantityText() string {
	if b.RawQuantity != "" {
		return b.RawQuantity + " (not a number)"
	}
	return strconv.FormatInt(b.Quantity, 10)
}

// Column is one of the four attributes of a Book. The set is closed:
// every query template in internal/db is keyed by a Column value.
type Column int

const (
	ColumnID Column = iota
	ColumnTitle
	ColumnAuthor
	ColumnQuantity
)

// Columns lists the known columns in table order.
var Columns = []Column{ColumnID, ColumnTitle, ColumnAuthor, ColumnQuantity}

// EditableColumns are the columns a clerk may change after creation.
var EditableColumns = []Column{ColumnTitle, ColumnAuthor, ColumnQuantity}

var columnNames = map[Column]string{
	ColumnID:       "id",
	ColumnTitle:    "Title",
	ColumnAuthor:   "Author",
	ColumnQuantity: "Qty",
}

// lower-cased input -> column; "quantity" is accepted next to the table name "qty".
var columnAliases = map[string]Column{
	"id":       ColumnID,
	"title":    ColumnTitle,
	"author":   ColumnAuthor,
	"qty":      ColumnQuantity,
	"quantity": ColumnQuantity,
}

// String returns the canonical name: "id" as is, the rest capitalized.
func (c Column) String() string {
	if name, ok := columnNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Column(%d)", int(c))
}

// Numeric reports whether values of the column are integers.
func (c Column) Numeric() bool {
	return c == ColumnID || c == ColumnQuantity
}

// Valid reports whether c belongs to the known column set.
func (c Column) Valid() bool {
	_, ok := columnNames[c]
	return ok
}

// ParseColumn resolves user input to a Column by exact, case-insensitive match.
func ParseColumn(name string) (Column, bool) {
	col, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
	return col, ok
}

// ColumnNames renders a column list for prompts, e.g. "[id Title Author Qty]".
func ColumnNames(cols []Column) string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}
