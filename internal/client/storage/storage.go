// Package storage opens the durable draft store selected in the config and
// prepares it for use (migrations, connectivity check).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/textdesk/internal/client/config"
	"github.com/dmitrijs2005/textdesk/internal/client/migrations"
	"github.com/dmitrijs2005/textdesk/internal/client/repositories/drafts"
	"github.com/go-redis/redis/v8"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// StoreMemory keeps drafts in process memory only.
const StoreMemory = "memory"

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// RunMigrations applies the embedded migrations of one dialect directory.
func RunMigrations(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("goose dialect %s: %w", dialect, err)
	}
	return goose.UpContext(ctx, db, dir)
}

// OpenSQLite opens (creating if needed) the SQLite file at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if err := RunMigrations(ctx, db, goose.DialectSQLite3, "sqlite"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite migrations: %w", err)
	}
	return db, nil
}

// OpenPostgres connects through the pgx stdlib driver and migrates the schema.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := RunMigrations(ctx, db, goose.DialectPostgres, "postgres"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres migrations: %w", err)
	}
	return db, nil
}

// OpenRedis accepts either a redis:// URL or a bare host:port.
func OpenRedis(ctx context.Context, dsn string) (*redis.Client, error) {
	opts := &redis.Options{Addr: dsn}
	if strings.HasPrefix(dsn, "redis://") || strings.HasPrefix(dsn, "rediss://") {
		parsed, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		opts = parsed
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Open returns the draft repository configured by cfg.StoreDriver together
// with the closer releasing its connection.
func Open(ctx context.Context, cfg *config.Config) (drafts.Repository, io.Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite, "":
		db, err := OpenSQLite(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, nil, err
		}
		return drafts.NewSQLiteRepository(db), db, nil

	case config.StorePostgres:
		db, err := OpenPostgres(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, nil, err
		}
		return drafts.NewPostgresRepository(db), db, nil

	case config.StoreRedis:
		rdb, err := OpenRedis(ctx, cfg.StoreDSN)
		if err != nil {
			return nil, nil, err
		}
		return drafts.NewRedisRepository(rdb, drafts.DefaultRedisKey), rdb, nil

	case StoreMemory:
		return drafts.NewMemoryRepository(), nopCloser{}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
