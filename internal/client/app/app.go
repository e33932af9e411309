// Package app wires configuration into the components shared by the terminal
// and browser front ends.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/textdesk/internal/client/client"
	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/client/export"
	"github.com/dmitrijs2005/textdesk/internal/client/form"
	"github.com/dmitrijs2005/textdesk/internal/client/repositories/drafts"
	"github.com/dmitrijs2005/textdesk/internal/client/storage"
	"github.com/dmitrijs2005/textdesk/internal/logging"
)

type Components struct {
	Form   *form.Controller
	Drafts drafts.Repository
	// Saver is nil when export could not be set up.
	Saver  export.Saver
	Logger logging.Logger

	closer io.Closer
}

// Build opens the draft store, creates the endpoint client and the form
// controller. Logs go to logOut. Drafts are not restored here; each front end
// calls Form.Restore when it starts.
func Build(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Components, error) {
	logger := logging.New(cfg.LogLevel, logOut)

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	ec, err := client.NewHTTPClient(cfg.EndpointBaseURL,
		client.WithSecret(cfg.EndpointSecret),
		client.WithLogger(logger),
	)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	var saver export.Saver
	if s, err := export.New(ctx, cfg); err != nil {
		logger.Warn(ctx, "export disabled", "error", err)
	} else {
		saver = s
	}

	logger.Info(ctx, "components ready",
		"store", cfg.StoreDriver,
		"endpoint", cfg.EndpointBaseURL,
		"export", saver != nil,
	)

	return &Components{
		Form:   form.New(repo, ec, logger),
		Drafts: repo,
		Saver:  saver,
		Logger: logger,
		closer: closer,
	}, nil
}

// Close releases the draft store connection.
func (c *Components) Close() error {
	return c.closer.Close()
}
