package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/client/state"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"golang.org/x/term"
)

// App is the interactive front-end bound to one loaded state cache.
type App struct {
	cache  *state.Cache
	out    io.Writer
	logger logging.Logger
	now    func() time.Time

	// interactive enables prompts; it is false when input is not a terminal.
	interactive bool
	lines       <-chan string
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(cache *state.Cache, in io.Reader, out io.Writer, logger logging.Logger) *App {
	a := &App{
		cache:  cache,
		out:    out,
		logger: logger.With("module", "cli"),
		now:    time.Now,
		lines:  scanLines(in),
	}
	if f, ok := in.(*os.File); ok {
		a.interactive = term.IsTerminal(int(f.Fd()))
	}
	return a
}

func scanLines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// readLine returns the next input line, io.EOF when input is exhausted, or
// ctx.Err() once ctx is done.
func (a *App) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-a.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// Run prints a greeting and serves commands until exit, end of input or
// cancellation of ctx.
func (a *App) Run(ctx context.Context) error {
	a.println("DebtKeeper (type 'help' for commands)")
	return runREPL(ctx, a)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) prompt() string {
	p := a.cache.ActiveAccount().Name
	if a.cache.State() == state.Dirty {
		p += "*"
	}
	return p
}
