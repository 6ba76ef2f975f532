package db

import (
	"fmt"

	"bookstore/internal/models"
)

// Query text is fixed per column; values always travel as parameters.

const (
	selectAll      = `SELECT id, Title, Author, Qty FROM books ORDER BY id`
	insertOrIgnore = `INSERT OR IGNORE INTO books (id, Title, Author, Qty) VALUES (?, ?, ?, ?)`
)

var selectWhere = map[models.Column]string{
	models.ColumnID:       `SELECT id, Title, Author, Qty FROM books WHERE id = ? ORDER BY id`,
	models.ColumnTitle:    `SELECT id, Title, Author, Qty FROM books WHERE Title = ? ORDER BY id`,
	models.ColumnAuthor:   `SELECT id, Title, Author, Qty FROM books WHERE Author = ? ORDER BY id`,
	models.ColumnQuantity: `SELECT id, Title, Author, Qty FROM books WHERE Qty = ? ORDER BY id`,
}

var countWhere = map[models.Column]string{
	models.ColumnID:       `SELECT COUNT(*) FROM books WHERE id = ?`,
	models.ColumnTitle:    `SELECT COUNT(*) FROM books WHERE Title = ?`,
	models.ColumnAuthor:   `SELECT COUNT(*) FROM books WHERE Author = ?`,
	models.ColumnQuantity: `SELECT COUNT(*) FROM books WHERE Qty = ?`,
}

// id is immutable, so it has no update template.
var updateByID = map[models.Column]string{
	models.ColumnTitle:    `UPDATE books SET Title = ? WHERE id = ?`,
	models.ColumnAuthor:   `UPDATE books SET Author = ? WHERE id = ?`,
	models.ColumnQuantity: `UPDATE books SET Qty = ? WHERE id = ?`,
}

var deleteWhere = map[models.Column]string{
	models.ColumnID:       `DELETE FROM books WHERE id = ?`,
	models.ColumnTitle:    `DELETE FROM books WHERE Title = ?`,
	models.ColumnAuthor:   `DELETE FROM books WHERE Author = ?`,
	models.ColumnQuantity: `DELETE FROM books WHERE Qty = ?`,
}

func lookup(templates map[models.Column]string, col models.Column) (string, error) {
	query, ok := templates[col]
	if !ok {
		return "", fmt.Errorf("no query for column %s", col)
	}
	return query, nil
}
