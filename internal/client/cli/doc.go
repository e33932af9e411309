// Package cli provides the interactive text desk terminal client.
//
// It restores the stored drafts, then runs a REPL whose commands drive the
// same form controller the browser front end uses:
//   - prompt / edit to change the texts (a prompt line is submitted with Enter)
//   - generate / translate, src / tgt to pick languages
//   - file, ratio, quality, resize and save for images
//   - show, drafts and reset to inspect or wipe state
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
