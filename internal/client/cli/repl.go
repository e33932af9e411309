package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Show(ctx context.Context) error
	Prompt(ctx context.Context, args []string) error
	Edit(ctx context.Context) error
	Generate(ctx context.Context) error
	Translate(ctx context.Context) error
	Source(ctx context.Context, args []string) error
	Target(ctx context.Context, args []string) error
	File(ctx context.Context, args []string) error
	Ratio(ctx context.Context, args []string) error
	Quality(ctx context.Context, args []string) error
	Resize(ctx context.Context) error
	Save(ctx context.Context) error
	Reset(ctx context.Context) error
	Drafts(ctx context.Context) error
}

const helpText = `Available commands:
  prompt [text]     set the prompt and press Enter (generates)
  edit              replace the editor text (multi-line)
  generate          send the prompt for generation
  translate         translate the prompt (src -> tgt)
  src <code>        source language: te_IN, en_XX
  tgt <code>        target language: te_IN, en_XX
  file <path>       pick an image for resizing
  ratio <v>         resize ratio
  quality <v>       resize quality
  resize            send the picked image for resizing
  save              export the resized image
  show              print the form
  drafts            list the stored drafts
  reset             clear the stored drafts
  exit | quit       leave the program`

// runREPL reads a line from r, parses the first token as the command and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Errors returned by command handlers are only echoed; the controller logs
// them with the request id, so the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, showPrompt bool) {
	for {
		if showPrompt {
			printlnFn(fmt.Sprintf("td %s > ", statusFn()))
		}

		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "show":
			cmdErr = a.Show(ctx)
		case "prompt":
			cmdErr = a.Prompt(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx)
		case "g", "generate":
			cmdErr = a.Generate(ctx)
		case "t", "translate":
			cmdErr = a.Translate(ctx)
		case "src":
			cmdErr = a.Source(ctx, args)
		case "tgt":
			cmdErr = a.Target(ctx, args)
		case "file":
			cmdErr = a.File(ctx, args)
		case "ratio":
			cmdErr = a.Ratio(ctx, args)
		case "quality":
			cmdErr = a.Quality(ctx, args)
		case "resize":
			cmdErr = a.Resize(ctx)
		case "save":
			cmdErr = a.Save(ctx)
		case "reset":
			cmdErr = a.Reset(ctx)
		case "drafts":
			cmdErr = a.Drafts(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
