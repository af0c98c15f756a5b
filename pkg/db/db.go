package db

import (
	"database/sql"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ReadOnlyDSN returns a go-sqlite3 data source name that opens path
// read-only, without creating it, and without SQLite's internal mutex.
func ReadOnlyDSN(path string) string {
	// No "//" authority, so relative paths stay relative.
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro&_mutex=no"
}

// InitDB creates the libcangjie tables on the given DB connection. Lookups
// never write; this exists for building fixtures.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(schemaSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
