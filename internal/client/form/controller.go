// Package form implements the text desk form controller: the in-memory form
// state, its write-through persistence and the three endpoint submissions.
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/textdesk/internal/client/client"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/logging"
	"github.com/google/uuid"
)

// ErrorMessage replaces the output after a failed generation or translation.
const ErrorMessage = "Error occurred. Please try again."

var ErrNoFile = errors.New("no file selected")

// Store is the durable string store the three drafts live in.
// Get reports ok=false for keys that were never written.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// Controller owns the form state. It is safe for concurrent use.
//
// Submissions are neither serialized nor cancelled by the controller: when two
// requests overlap, whichever resolves last decides the output.
type Controller struct {
	store  Store
	client client.Client
	logger logging.Logger
	newID  func() string

	// persistMu orders draft writes so the store ends with the latest state.
	persistMu sync.Mutex

	mu      sync.Mutex
	prompt  string
	output  string
	editor  string
	src     models.Language
	tgt     models.Language
	loading bool
	file    *models.ImageFile
	ratio   string
	quality string
	result  string
}

func New(store Store, c client.Client, logger logging.Logger) *Controller {
	return &Controller{
		store:   store,
		client:  c,
		logger:  logger.With("module", "form"),
		newID:   uuid.NewString,
		src:     models.DefaultSourceLanguage,
		tgt:     models.DefaultTargetLanguage,
		ratio:   models.DefaultRatio,
		quality: models.DefaultQuality,
	}
}

// Restore loads the three drafts from the store. Absent keys, and keys that
// fail to load, come back as "".
func (c *Controller) Restore(ctx context.Context) error {
	var errs []error
	load := func(key string) string {
		v, _, err := c.store.Get(ctx, key)
		if err != nil {
			c.logger.Error(ctx, "draft restore failed", "key", key, "error", err)
			errs = append(errs, err)
			return ""
		}
		return v
	}

	prompt := load(models.KeyInputText)
	output := load(models.KeyOutputText)
	editor := load(models.KeyEditorText)

	c.mu.Lock()
	c.prompt, c.output, c.editor = prompt, output, editor
	c.mu.Unlock()

	return errors.Join(errs...)
}

// SetPrompt updates the prompt and writes both editable drafts through.
func (c *Controller) SetPrompt(ctx context.Context, v string) error {
	return c.editDrafts(ctx, func() { c.prompt = v })
}

// SetEditor updates the editor text and writes both editable drafts through.
func (c *Controller) SetEditor(ctx context.Context, v string) error {
	return c.editDrafts(ctx, func() { c.editor = v })
}

func (c *Controller) editDrafts(ctx context.Context, edit func()) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	edit()
	prompt, editor := c.prompt, c.editor
	c.mu.Unlock()

	if err := c.store.Set(ctx, models.KeyInputText, prompt); err != nil {
		c.logger.Error(ctx, "draft write failed", "key", models.KeyInputText, "error", err)
		return err
	}
	if err := c.store.Set(ctx, models.KeyEditorText, editor); err != nil {
		c.logger.Error(ctx, "draft write failed", "key", models.KeyEditorText, "error", err)
		return err
	}
	return nil
}

func (c *Controller) SetSourceLanguage(l models.Language) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedLanguage, l)
	}
	c.mu.Lock()
	c.src = l
	c.mu.Unlock()
	return nil
}

func (c *Controller) SetTargetLanguage(l models.Language) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnsupportedLanguage, l)
	}
	c.mu.Lock()
	c.tgt = l
	c.mu.Unlock()
	return nil
}

// SelectFile keeps f for the next resize. Nothing about the file is checked.
func (c *Controller) SelectFile(f *models.ImageFile) {
	c.mu.Lock()
	c.file = f
	c.mu.Unlock()
}

func (c *Controller) SetRatio(v string) {
	c.mu.Lock()
	c.ratio = v
	c.mu.Unlock()
}

func (c *Controller) SetQuality(v string) {
	c.mu.Lock()
	c.quality = v
	c.mu.Unlock()
}

// KeyDown handles a key pressed in the prompt field: Enter submits generation.
func (c *Controller) KeyDown(ctx context.Context, key string) error {
	if key != "Enter" {
		return nil
	}
	return c.Generate(ctx)
}

// Generate submits the prompt to the generation endpoint.
func (c *Controller) Generate(ctx context.Context) error {
	ctx, log := c.begin(ctx, "generate")
	defer c.setLoading(false)

	c.mu.Lock()
	prompt := c.prompt
	c.mu.Unlock()

	text, err := c.client.Generate(ctx, prompt)
	if err != nil {
		log.Error(ctx, "generate failed", "error", err)
		c.setOutput(ErrorMessage)
		return err
	}
	return c.commitOutput(ctx, log, text)
}

// Translate submits the prompt and the selected languages to the translation
// endpoint. The output becomes the response body as-is.
func (c *Controller) Translate(ctx context.Context) error {
	ctx, log := c.begin(ctx, "translate")
	defer c.setLoading(false)

	c.mu.Lock()
	prompt, src, tgt := c.prompt, c.src, c.tgt
	c.mu.Unlock()

	text, err := c.client.Translate(ctx, prompt, src, tgt)
	if err != nil {
		log.Error(ctx, "translate failed", "error", err)
		c.setOutput(ErrorMessage)
		return err
	}
	return c.commitOutput(ctx, log, text)
}

// Resize sends the selected file to the resize endpoint. A failure is logged
// and returned; the visible output is left alone.
func (c *Controller) Resize(ctx context.Context) error {
	ctx, log := c.begin(ctx, "resize")
	defer c.setLoading(false)

	c.mu.Lock()
	file, ratio, quality := c.file, c.ratio, c.quality
	c.mu.Unlock()

	if file == nil {
		log.Error(ctx, "resize failed", "error", ErrNoFile)
		return ErrNoFile
	}

	img, err := c.client.Resize(ctx, models.ResizeRequest{
		Base64Image: models.StripImagePrefix(file.DataURL()),
		Ratio:       ratio,
		Quality:     quality,
	})
	if err != nil {
		log.Error(ctx, "resize failed", "file", file.Name, "error", err)
		return err
	}

	c.mu.Lock()
	c.result = img
	c.mu.Unlock()
	log.Info(ctx, "image resized", "file", file.Name)
	return nil
}

// Reset wipes the stored drafts and empties the three text fields.
func (c *Controller) Reset(ctx context.Context) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.mu.Lock()
	c.prompt, c.output, c.editor = "", "", ""
	c.mu.Unlock()

	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error(ctx, "draft reset failed", "error", err)
		return err
	}
	return nil
}

// View returns a snapshot of the current state.
func (c *Controller) View() models.View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := models.View{
		Prompt:         c.prompt,
		Output:         c.output,
		Editor:         c.editor,
		SourceLanguage: c.src,
		TargetLanguage: c.tgt,
		Loading:        c.loading,
		Ratio:          c.ratio,
		Quality:        c.quality,
		Result:         c.result,
	}
	if c.file != nil {
		v.FileName = c.file.Name
	}
	return v
}

// begin raises the loading flag and tags ctx and the logger with a request id.
func (c *Controller) begin(ctx context.Context, op string) (context.Context, logging.Logger) {
	id := c.newID()
	c.setLoading(true)
	return client.WithRequestID(ctx, id), c.logger.With("op", op, "req_id", id)
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *Controller) setOutput(v string) {
	c.mu.Lock()
	c.output = v
	c.mu.Unlock()
}

// commitOutput shows and persists a successful result.
func (c *Controller) commitOutput(ctx context.Context, log logging.Logger, text string) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	c.setOutput(text)
	if err := c.store.Set(ctx, models.KeyOutputText, text); err != nil {
		log.Error(ctx, "draft write failed", "key", models.KeyOutputText, "error", err)
		return err
	}
	log.Info(ctx, "output updated", "chars", len(text))
	return nil
}
