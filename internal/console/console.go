package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Options configures a terminal console.
type Options struct {
	// HistoryFile keeps readline history between runs; empty disables it.
	HistoryFile string

	// InterruptLine is returned by Prompt when the clerk presses Ctrl+C.
	InterruptLine string

	// Completions are offered on Tab, e.g. column names.
	Completions []string
}

// Console reads one line per prompt. On a terminal it uses readline,
// otherwise (pipes, tests) a plain bufio.Scanner.
type Console struct {
	rl        *readline.Instance
	scanner   *bufio.Scanner
	out       io.Writer
	interrupt string
}

// New opens a console on stdin/stdout.
func New(opts Options) (*Console, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return NewReader(os.Stdin, os.Stdout), nil
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:       opts.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "",
		HistorySearchFold: true,
		AutoComplete:      newCompleter(opts.Completions),
	})
	if err != nil {
		return nil, fmt.Errorf("readline: %w", err)
	}

	return &Console{
		rl:        rl,
		out:       rl.Stdout(),
		interrupt: opts.InterruptLine,
	}, nil
}

func newCompleter(words []string) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(words))
	for _, w := range words {
		items = append(items, readline.PcItem(w))
	}
	return readline.NewPrefixCompleter(items...)
}

// NewReader builds a console over arbitrary streams, with no line editing.
func NewReader(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Out is where menus and tables should be written.
func (c *Console) Out() io.Writer {
	return c.out
}

// Prompt prints prompt and returns the entered line without surrounding
// whitespace. io.EOF means the input is exhausted (Ctrl+D or end of pipe).
func (c *Console) Prompt(prompt string) (string, error) {
	// readline redraws only the last prompt line, so leading blank lines go out separately.
	trimmed := strings.TrimLeft(prompt, "\n")
	if lead := len(prompt) - len(trimmed); lead > 0 {
		fmt.Fprint(c.out, strings.Repeat("\n", lead))
	}

	if c.rl != nil {
		c.rl.SetPrompt(trimmed)
		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				return c.interrupt, nil
			}
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	fmt.Fprint(c.out, trimmed)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Console) Close() error {
	if c.rl != nil {
		return c.rl.Close()
	}
	return nil
}
