package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	Conn *sql.DB
	Path string
}

func NewSQLiteDB(path string) *SQLiteDB {
	return &SQLiteDB{Path: path}
}

func (s *SQLiteDB) Connect(ctx context.Context) error {
	if dir := filepath.Dir(s.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return err
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	s.Conn = conn
	return s.Conn.PingContext(ctx)
}

func (s *SQLiteDB) Disconnect() error {
	if s.Conn != nil {
		return s.Conn.Close()
	}
	return nil
}
