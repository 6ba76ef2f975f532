package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookstore/internal/models"
)

// CancelToken typed at any sub-prompt aborts the current operation.
const CancelToken = "-1"

var (
	ErrCancelled       = errors.New("cancelled")
	ErrUnknownColumn   = errors.New("no such column")
	ErrImmutableColumn = errors.New("you cannot modify the id")
	ErrNoSuchValue     = errors.New("no such value")
	ErrNotANumber      = errors.New("please enter a number")
	ErrNegative        = errors.New("quantity cannot be negative")
	ErrEmptyValue      = errors.New("value cannot be empty")
)

// Prompter returns one trimmed line of input per call.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Lookup counts rows that hold value in col.
type Lookup interface {
	CountWhere(ctx context.Context, col models.Column, value any) (int, error)
}

// Selection is a column/value pair known to match at least one row.
type Selection struct {
	Column models.Column
	Value  any
	Raw    string
}

// IsCancel reports whether raw is the cancel sentinel.
func IsCancel(raw string) bool {
	return strings.TrimSpace(raw) == CancelToken
}

// CheckColumn resolves a column name against the closed column set.
func CheckColumn(raw string) (models.Column, error) {
	if IsCancel(raw) {
		return 0, ErrCancelled
	}
	col, ok := models.ParseColumn(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, strings.TrimSpace(raw))
	}
	return col, nil
}

// CheckEditableColumn is CheckColumn that also refuses the immutable id.
func CheckEditableColumn(raw string) (models.Column, error) {
	col, err := CheckColumn(raw)
	if err != nil {
		return 0, err
	}
	if col == models.ColumnID {
		return 0, ErrImmutableColumn
	}
	return col, nil
}

// ParseValue converts raw input to the Go type stored in col: int64 for
// id and Qty, the trimmed string otherwise.
func ParseValue(col models.Column, raw string) (any, error) {
	if IsCancel(raw) {
		return nil, ErrCancelled
	}
	raw = strings.TrimSpace(raw)

	if !col.Numeric() {
		return raw, nil
	}
	if col == models.ColumnQuantity {
		return ParseQuantity(raw)
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrNotANumber
	}
	return n, nil
}

// ParseQuantity accepts non-negative integers only.
func ParseQuantity(raw string) (int64, error) {
	if IsCancel(raw) {
		return 0, ErrCancelled
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ErrNotANumber
	}
	if n < 0 {
		return 0, ErrNegative
	}
	return n, nil
}

// Verifier runs the prompt loops that turn user input into a Selection.
type Verifier struct {
	lookup Lookup
	in     Prompter
	out    io.Writer
}

func NewVerifier(lookup Lookup, in Prompter, out io.Writer) *Verifier {
	return &Verifier{lookup: lookup, in: in, out: out}
}

// CheckValue parses raw for col and confirms at least one row holds it.
func (v *Verifier) CheckValue(ctx context.Context, col models.Column, raw string) (Selection, error) {
	value, err := ParseValue(col, raw)
	if err != nil {
		return Selection{}, err
	}

	n, err := v.lookup.CountWhere(ctx, col, value)
	if err != nil {
		return Selection{}, err
	}
	if n == 0 {
		return Selection{}, fmt.Errorf("%w: %s in %s", ErrNoSuchValue, strings.TrimSpace(raw), col)
	}
	return Selection{Column: col, Value: value, Raw: strings.TrimSpace(raw)}, nil
}

// Verify re-prompts until columnName names a known column and the entered
// value exists in it. ErrCancelled is returned as soon as the sentinel is typed.
func (v *Verifier) Verify(ctx context.Context, columnName string) (Selection, error) {
	col, err := CheckColumn(columnName)
	for err != nil {
		if errors.Is(err, ErrCancelled) {
			return Selection{}, ErrCancelled
		}
		fmt.Fprintln(v.out, "No such column.")

		raw, perr := v.in.Prompt(fmt.Sprintf("Choose from %s or %s for main menu: ", models.ColumnNames(models.Columns), CancelToken))
		if perr != nil {
			return Selection{}, perr
		}
		col, err = CheckColumn(raw)
	}

	for {
		raw, err := v.in.Prompt(fmt.Sprintf("Please enter the %s of the book or %s for main menu: ", col, CancelToken))
		if err != nil {
			return Selection{}, err
		}

		sel, err := v.CheckValue(ctx, col, raw)
		switch {
		case err == nil:
			return sel, nil
		case errors.Is(err, ErrCancelled):
			return Selection{}, ErrCancelled
		case errors.Is(err, ErrNoSuchValue):
			fmt.Fprintf(v.out, "No item with value %s in %s.\n", raw, col)
		case errors.Is(err, ErrNotANumber), errors.Is(err, ErrNegative):
			fmt.Fprintf(v.out, "No item with value %s in %s: %v.\n", raw, col, err)
		default:
			return Selection{}, err
		}
	}
}
