package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/textdesk/internal/client/export"
	"github.com/dmitrijs2005/textdesk/internal/client/form"
	"github.com/dmitrijs2005/textdesk/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/textdesk/internal/logging"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	form   *form.Controller
	drafts drafts.Repository
	saver  export.Saver
	logger logging.Logger
	reader *bufio.Reader

	outMu sync.Mutex
	out   io.Writer

	inflight sync.WaitGroup
}

// NewApp wires the REPL to stdin/stdout. saver may be nil, in which case the
// save command reports that export is not configured.
func NewApp(fc *form.Controller, repo drafts.Repository, saver export.Saver, logger logging.Logger) *App {
	return &App{
		form:   fc,
		drafts: repo,
		saver:  saver,
		logger: logger.With("module", "cli"),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	if err := a.form.Restore(ctx); err != nil {
		a.printf("Some drafts could not be restored: %v\n", err)
	}

	interactive := isTerminal(int(os.Stdin.Fd()))
	if interactive {
		a.printf("Welcome to textdesk (type 'help' for commands)\n")
	}
	a.logger.Debug(ctx, "repl started", "interactive", interactive)
	runREPL(ctx, a, a.getStatus, a.reader, interactive)
	a.Wait()
	a.logger.Debug(ctx, "repl stopped")
}

// submit runs fn in the background so the prompt stays responsive while an
// endpoint request is in flight.
func (a *App) submit(ctx context.Context, fn func(context.Context)) {
	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		fn(ctx)
	}()
}

// Wait blocks until every submitted request has resolved.
func (a *App) Wait() {
	a.inflight.Wait()
}

func (a *App) getStatus() string {
	v := a.form.View()
	s := fmt.Sprintf("%s>%s", v.SourceLanguage, v.TargetLanguage)
	if v.FileName != "" {
		s += " " + v.FileName
	}
	if v.Loading {
		s += " loading"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}
