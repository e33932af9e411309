package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/client/models"
	"github.com/dmitrijs2005/textdesk/internal/client/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = storage.StoreMemory
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	return cfg
}

func TestBuild_Defaults(t *testing.T) {
	var logs bytes.Buffer
	c, err := Build(context.Background(), testConfig(t), &logs)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NotNil(t, c.Form)
	require.NotNil(t, c.Drafts)
	require.NotNil(t, c.Saver)
	assert.Equal(t, models.LanguageTelugu, c.Form.View().SourceLanguage)
	assert.Contains(t, logs.String(), "components ready")
}

func TestBuild_SQLiteRestoresDrafts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.StoreDriver = config.StoreSQLite
	cfg.StoreDSN = filepath.Join(t.TempDir(), "desk.db")

	first, err := Build(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, first.Form.SetEditor(ctx, "kept across runs"))
	require.NoError(t, first.Close())

	second, err := Build(ctx, cfg, &bytes.Buffer{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	require.NoError(t, second.Form.Restore(ctx))
	assert.Equal(t, "kept across runs", second.Form.View().Editor)
}

func TestBuild_BadEndpoint(t *testing.T) {
	cfg := testConfig(t)
	cfg.EndpointBaseURL = "localhost:5000"

	_, err := Build(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
}

func TestBuild_UnknownStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "mongo"

	_, err := Build(context.Background(), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store init error")
}
