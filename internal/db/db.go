package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryDSN is the DSN of the default process-lifetime database.
const MemoryDSN = ":memory:"

// IsMemory reports whether dsn names an in-memory database.
func IsMemory(dsn string) bool {
	return dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
}

// OpenDB opens the plant map store at dsn and applies pending migrations.
// An in-memory store is pinned to one connection, since every new
// connection to :memory: would see an empty database.
func OpenDB(dsn string) (*sql.DB, error) {
	memory := IsMemory(dsn)
	if !memory {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", dsn, err)
	}

	pragmas := []string{"PRAGMA foreign_keys = ON"}
	if memory {
		database.SetMaxOpenConns(1)
		database.SetConnMaxLifetime(0)
		database.SetConnMaxIdleTime(0)
	} else {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := database.Exec(p); err != nil {
			database.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return database, nil
}
