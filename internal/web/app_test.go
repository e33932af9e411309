package web

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/client/storage"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestApp_ServesUntilCancelled(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = storage.StoreMemory
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	cfg.WebAddr = freeAddr(t)
	cfg.LogLevel = "error"

	ctx, cancel := context.WithCancel(context.Background())
	a, err := NewApp(ctx, cfg)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	url := "http://" + cfg.WebAddr + "/api/state"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_ListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = storage.StoreMemory
	cfg.ExportDir = filepath.Join(t.TempDir(), "exports")
	cfg.WebAddr = l.Addr().String()
	cfg.LogLevel = "error"

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.Error(t, a.Run(context.Background()))
}
