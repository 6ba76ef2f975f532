package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"bookstore/internal/models"
	"bookstore/internal/render"
	"bookstore/internal/service"
)

// Choice is a main menu entry.
type Choice int

const (
	ChoiceExit Choice = iota
	ChoiceCreate
	ChoiceUpdate
	ChoiceDelete
	ChoiceSearch
	ChoiceList
)

// State is where the clerk currently is in a flow.
type State int

const (
	StateMainMenu State = iota
	StateAwaitingColumnChoice
	StateAwaitingValue
	StateAwaitingFieldChoice
	StateAwaitingNewValue
)

func (s State) String() string {
	switch s {
	case StateMainMenu:
		return "main-menu"
	case StateAwaitingColumnChoice:
		return "awaiting-column"
	case StateAwaitingValue:
		return "awaiting-value"
	case StateAwaitingFieldChoice:
		return "awaiting-field"
	case StateAwaitingNewValue:
		return "awaiting-new-value"
	default:
		return "unknown"
	}
}

var (
	ErrNotDigit      = errors.New("please enter the choice as a number")
	ErrUnknownChoice = errors.New("incorrect entry")
)

const menuText = `
         Menu
--------------------------
    1.  Enter book
    2.  Update book
    3.  Delete book
    4.  Search books
    5.  View all books
    0.  Exit
--------------------------
`

// ParseChoice maps the raw menu input to a Choice.
func ParseChoice(raw string) (Choice, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrNotDigit
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, ErrNotDigit
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < int(ChoiceExit) || n > int(ChoiceList) {
		return 0, ErrUnknownChoice
	}
	return Choice(n), nil
}

// Session is the interactive menu loop.
type Session struct {
	inv      *service.Inventory
	verifier *service.Verifier
	in       service.Prompter
	out      io.Writer
	log      *slog.Logger
	state    State
}

func NewSession(inv *service.Inventory, in service.Prompter, out io.Writer, logger *slog.Logger) *Session {
	return &Session{
		inv:      inv,
		verifier: service.NewVerifier(inv.Store(), in, out),
		in:       in,
		out:      out,
		log:      logger.With("component", "menu"),
		state:    StateMainMenu,
	}
}

// State returns the current flow state.
func (s *Session) State() State {
	return s.state
}

// Run shows the menu until the clerk picks Exit or the input ends; both
// return nil. Any other error is a storage failure and ends the loop.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.enter(StateMainMenu)
		fmt.Fprint(s.out, menuText)

		raw, err := s.in.Prompt("Please enter your choice number: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		choice, err := ParseChoice(raw)
		switch {
		case errors.Is(err, ErrNotDigit):
			fmt.Fprintln(s.out, "\nPlease enter the choice as a number.")
			continue
		case errors.Is(err, ErrUnknownChoice):
			fmt.Fprintln(s.out, "\nIncorrect entry.")
			continue
		}

		if choice == ChoiceExit {
			return nil
		}

		err = s.dispatch(ctx, choice)
		switch {
		case err == nil:
		case errors.Is(err, service.ErrCancelled):
			fmt.Fprintln(s.out, "\nGoing back to main menu.")
		case errors.Is(err, io.EOF):
			return nil
		default:
			return err
		}
	}
}

func (s *Session) dispatch(ctx context.Context, choice Choice) error {
	switch choice {
	case ChoiceCreate:
		return s.createBook(ctx)
	case ChoiceUpdate:
		return s.updateBook(ctx)
	case ChoiceDelete:
		return s.deleteBook(ctx)
	case ChoiceSearch:
		return s.searchBooks(ctx)
	case ChoiceList:
		return s.listBooks(ctx)
	}
	return ErrUnknownChoice
}

func (s *Session) enter(state State) {
	if s.state != state {
		s.log.Debug("state change", "from", s.state.String(), "to", state.String())
	}
	s.state = state
}

// askText reads a non-empty line; the cancel sentinel becomes service.ErrCancelled.
func (s *Session) askText(prompt string) (string, error) {
	for {
		raw, err := s.in.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if service.IsCancel(raw) {
			return "", service.ErrCancelled
		}
		if raw != "" {
			return raw, nil
		}
		fmt.Fprintln(s.out, "Please enter a value.")
	}
}

func (s *Session) createBook(ctx context.Context) error {
	s.enter(StateAwaitingNewValue)

	title, err := s.askText("Please enter the book title or -1 for main menu: ")
	if err != nil {
		return err
	}
	author, err := s.askText("Please enter the author of the book or -1 for main menu: ")
	if err != nil {
		return err
	}

	qty, err := s.askQuantity("Please enter the quantity of the book: ")
	if err != nil {
		return err
	}

	book, inserted, err := s.inv.Create(ctx, title, author, qty)
	if err != nil {
		return err
	}
	if !inserted {
		fmt.Fprintln(s.out, "\nThe book could not be added, please try again.")
		return nil
	}

	render.Books(s.out, []models.Book{book})
	return nil
}

func (s *Session) askQuantity(prompt string) (int64, error) {
	for {
		raw, err := s.in.Prompt(prompt)
		if err != nil {
			return 0, err
		}

		qty, err := service.ParseQuantity(raw)
		switch {
		case err == nil:
			return qty, nil
		case errors.Is(err, service.ErrCancelled):
			return 0, err
		case errors.Is(err, service.ErrNegative):
			fmt.Fprintln(s.out, "The quantity cannot be negative.")
		default:
			fmt.Fprintln(s.out, "Please enter a number.")
		}
	}
}

func (s *Session) updateBook(ctx context.Context) error {
	fmt.Fprintln(s.out, "Please select the book to update by id.")
	s.enter(StateAwaitingValue)

	sel, err := s.verifier.Verify(ctx, models.ColumnID.String())
	if err != nil {
		return err
	}
	id := sel.Value.(int64)

	book, err := s.inv.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, "\nPlease select the attribute to update.")
	render.Books(s.out, []models.Book{book})

	s.enter(StateAwaitingFieldChoice)
	var col models.Column
	for {
		raw, err := s.in.Prompt(fmt.Sprintf("\nChoose from %s or -1 for main menu: ", models.ColumnNames(models.EditableColumns)))
		if err != nil {
			return err
		}

		col, err = service.CheckEditableColumn(raw)
		if err == nil {
			break
		}
		switch {
		case errors.Is(err, service.ErrCancelled):
			return err
		case errors.Is(err, service.ErrImmutableColumn):
			fmt.Fprintln(s.out, "\nYou cannot modify the id.")
		default:
			fmt.Fprintln(s.out, "\nInvalid column.")
		}
	}

	s.enter(StateAwaitingNewValue)
	prompt := fmt.Sprintf("Please enter the updated data for book %s: ", strings.ToLower(col.String()))

	var value any
	if col == models.ColumnQuantity {
		qty, err := s.askQuantity(prompt)
		if err != nil {
			return err
		}
		value = qty
	} else {
		raw, err := s.askText(prompt)
		if err != nil {
			return err
		}
		value = raw
	}

	updated, ok, err := s.inv.Update(ctx, id, col, value)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	fmt.Fprintf(s.out, "\n%s has been updated to %v\n", col, value)
	render.Books(s.out, []models.Book{updated})
	return nil
}

func (s *Session) deleteBook(ctx context.Context) error {
	fmt.Fprintln(s.out, "Please select the book to delete by id.")
	s.enter(StateAwaitingValue)

	sel, err := s.verifier.Verify(ctx, models.ColumnID.String())
	if err != nil {
		return err
	}

	deleted, err := s.inv.Delete(ctx, sel.Column, sel.Value)
	if err != nil {
		return err
	}
	if deleted {
		fmt.Fprintf(s.out, "\nThe book with %s %s has been deleted.\n", sel.Column, sel.Raw)
	} else {
		fmt.Fprintf(s.out, "\nThe book with %s %s could not be deleted.\n", sel.Column, sel.Raw)
	}
	return nil
}

func (s *Session) searchBooks(ctx context.Context) error {
	fmt.Fprintln(s.out, "Please specify by the attribute you would like to search by.")
	s.enter(StateAwaitingColumnChoice)

	raw, err := s.in.Prompt(fmt.Sprintf("Choose from %s or -1 for main menu: ", models.ColumnNames(models.Columns)))
	if err != nil {
		return err
	}

	s.enter(StateAwaitingValue)
	sel, err := s.verifier.Verify(ctx, raw)
	if err != nil {
		return err
	}

	books, err := s.inv.Search(ctx, sel.Column, sel.Value)
	if err != nil {
		return err
	}
	render.Books(s.out, books)
	return nil
}

func (s *Session) listBooks(ctx context.Context) error {
	books, err := s.inv.List(ctx)
	if err != nil {
		return err
	}
	render.Books(s.out, books)
	return nil
}
