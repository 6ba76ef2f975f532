package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"bookstore/internal/models"
)

// Books prints books as a bordered grid with the canonical column headers.
func Books(w io.Writer, books []models.Book) {
	fmt.Fprintln(w)
	if len(books) == 0 {
		fmt.Fprintln(w, "No books to show.")
		return
	}

	headers := make([]string, 0, len(models.Columns))
	for _, c := range models.Columns {
		headers = append(headers, c.String())
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)

	for _, b := range books {
		table.Append([]string{
			strconv.FormatInt(b.ID, 10),
			b.Title,
			b.Author,
			b.QuantityText(),
		})
	}
	table.Render()
}
