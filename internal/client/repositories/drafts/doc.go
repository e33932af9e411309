// Package drafts implements the durable store behind the text desk form.
//
// Backends:
//   - SQLiteRepository  : local file (modernc.org/sqlite), the default
//   - PostgresRepository: shared database (pgx stdlib driver)
//   - RedisRepository   : one Redis hash
//   - MemoryRepository  : process-local, nothing survives a restart
//
// The SQL backends expect the "drafts" table created by the embedded goose
// migrations (see package migrations and storage.Open).
package drafts
