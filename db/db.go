package db

import (
	"context"
	"fmt"
	"strings"
)

// DBType names the store behind the repositories, taken from DB_TYPE.
type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	SQLite   DBType = "sqlite"
)

// ParseDBType accepts the DB_TYPE values in any case.
func ParseDBType(s string) (DBType, error) {
	switch t := DBType(strings.ToLower(strings.TrimSpace(s))); t {
	case Postgres, Mongo, SQLite:
		return t, nil
	default:
		return "", fmt.Errorf("unsupported DB_TYPE %q", s)
	}
}

// DB is a connection that cmd/server opens at start and closes on shutdown.
type DB interface {
	Connect(ctx context.Context) error
	Disconnect() error
}
