package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stephenafamo/bob"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/expense-tracker/internal/config"
)

// Storage owns the SQLite database holding the four slots.
type Storage struct {
	DB     *sql.DB
	Reader *Reader
	bobDB  bob.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.DBPath)
}

// Open creates the database file if needed and applies pending migrations.
func Open(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := DSN(path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := RunMigrations(dsn); err != nil {
		_ = db.Close()
		return nil, err
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:     db,
		Reader: NewReader(bobDB),
		bobDB:  bobDB,
	}, nil
}

// DSN adds the connection pragmas used for every connection to path.
func DSN(path string) string {
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Write starts a transaction. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bobDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
