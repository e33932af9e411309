// Package export keeps resized images outside the session: on the local disk
// or in an S3-compatible bucket.
package export

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/google/uuid"
)

var ErrNoResult = errors.New("no resized image to export")

// Saver stores data under name and returns where it ended up.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) (location string, err error)
}

// NewName returns a fresh object name for a resized image.
func NewName() string {
	return "resized-" + uuid.NewString() + ".jpg"
}

// Result decodes the resize result of v and hands it to s.
func Result(ctx context.Context, s Saver, v models.View) (string, error) {
	if !v.HasResult() {
		return "", ErrNoResult
	}
	data, err := base64.StdEncoding.DecodeString(v.Result)
	if err != nil {
		return "", fmt.Errorf("decode result: %w", err)
	}
	return s.Save(ctx, NewName(), data)
}

// New picks the S3 saver when a bucket is configured and the local one otherwise.
func New(ctx context.Context, cfg *config.Config) (Saver, error) {
	if cfg.S3Bucket != "" {
		s, err := NewS3Saver(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			User:     cfg.S3User,
			Password: cfg.S3Password,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := NewFileSaver(cfg.ExportDir)
	if err != nil {
		return nil, err
	}
	return s, nil
}
