package cli

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dmitrijs2005/textdesk/internal/client/export"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/filex"
)

var errExportDisabled = errors.New("export is not configured")

func usage(s string) error {
	return errors.New("usage: " + s)
}

func (a *App) Show(_ context.Context) error {
	v := a.form.View()

	a.printf("Prompt:\n%s\n\n", v.Prompt)
	a.printf("Output:\n%s\n\n", v.Output)
	a.printf("Editor:\n%s\n\n", v.Editor)
	a.printf("Translate: %s (%s) -> %s (%s)\n",
		v.SourceLanguage, v.SourceLanguage.Label(), v.TargetLanguage, v.TargetLanguage.Label())

	file := v.FileName
	if file == "" {
		file = "-"
	}
	a.printf("Image: %s  ratio=%s  quality=%s\n", file, v.Ratio, v.Quality)
	if v.HasResult() {
		a.printf("Resized: %d base64 chars (use 'save' to export)\n", len(v.Result))
	}
	return nil
}

// Prompt replaces the prompt with one line of text and presses Enter, which
// submits it for generation. The text may follow the command directly.
//
// Prompt, Generate, Translate and Resize return once the request is issued;
// the outcome is printed when it resolves.
func (a *App) Prompt(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if len(args) == 0 {
		var err error
		text, err = GetSimpleText(a.reader, "Prompt", a.out)
		if err != nil {
			return err
		}
	}

	if err := a.form.SetPrompt(ctx, text); err != nil {
		return err
	}
	a.submit(ctx, func(ctx context.Context) {
		_ = a.form.KeyDown(ctx, "Enter")
		a.showOutput()
	})
	return nil
}

func (a *App) Edit(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Editor text", a.out)
	if err != nil {
		return err
	}
	return a.form.SetEditor(ctx, text)
}

// Request failures end up in the output field and in the log, so Generate and
// Translate never report an error of their own.
func (a *App) Generate(ctx context.Context) error {
	a.submit(ctx, func(ctx context.Context) {
		_ = a.form.Generate(ctx)
		a.showOutput()
	})
	return nil
}

func (a *App) Translate(ctx context.Context) error {
	a.submit(ctx, func(ctx context.Context) {
		_ = a.form.Translate(ctx)
		a.showOutput()
	})
	return nil
}

func (a *App) showOutput() {
	a.printf("%s\n", a.form.View().Output)
}

func (a *App) Source(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("src <" + languageCodes() + ">")
	}
	return a.form.SetSourceLanguage(models.Language(args[0]))
}

func (a *App) Target(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("tgt <" + languageCodes() + ">")
	}
	return a.form.SetTargetLanguage(models.Language(args[0]))
}

func languageCodes() string {
	var codes []string
	for _, l := range models.Languages() {
		codes = append(codes, string(l))
	}
	return strings.Join(codes, "|")
}

func (a *App) File(_ context.Context, args []string) error {
	if len(args) == 0 {
		return usage("file <path>")
	}
	name, mt, data, err := filex.ReadFile(strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.form.SelectFile(&models.ImageFile{Name: name, MIME: mt, Data: data})
	a.printf("Selected %s (%s, %d bytes)\n", name, mt, len(data))
	return nil
}

func (a *App) Ratio(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("ratio <value>")
	}
	a.form.SetRatio(args[0])
	return nil
}

func (a *App) Quality(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("quality <value>")
	}
	a.form.SetQuality(args[0])
	return nil
}

func (a *App) Resize(ctx context.Context) error {
	a.submit(ctx, func(ctx context.Context) {
		if err := a.form.Resize(ctx); err != nil {
			a.printf("Resize failed: %v\n", err)
			return
		}
		a.printf("Resized: %d base64 chars\n", len(a.form.View().Result))
	})
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if a.saver == nil {
		return errExportDisabled
	}
	loc, err := export.Result(ctx, a.saver, a.form.View())
	if err != nil {
		return err
	}
	a.printf("Saved to %s\n", loc)
	return nil
}

func (a *App) Reset(ctx context.Context) error {
	if err := a.form.Reset(ctx); err != nil {
		return err
	}
	a.printf("Drafts cleared\n")
	return nil
}

func (a *App) Drafts(ctx context.Context) error {
	all, err := a.drafts.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		a.printf("No drafts stored\n")
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		a.printf("%-12s %d chars\n", k, len([]rune(all[k])))
	}
	return nil
}
