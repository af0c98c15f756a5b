// Package howtotype finds out how to type a character with Cangjie by
// querying libcangjie's database.
package howtotype

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"golang.org/x/text/unicode/norm"

	"github.com/japaniel/howtotype/pkg/cangjie"
	"github.com/japaniel/howtotype/pkg/db"
)

// DefaultPath is where libcangjie installs its database.
const DefaultPath = "/usr/share/libcangjie/cangjie.db"

// Version returns the current version of the package.
func Version() string { return "0.1.0" }

// Engine answers lookups against one read-only connection to the table.
// Calls are synchronous; concurrent callers are serialized on the single
// connection. Results are never cached.
type Engine struct {
	path      string
	logger    *log.Logger
	normalize bool

	conn   *sql.DB
	lookup *sql.Stmt
	closed atomic.Bool
}

// Option configures Open.
type Option func(*Engine)

// WithPath opens the table at path instead of DefaultPath.
func WithPath(path string) Option {
	return func(e *Engine) { e.path = path }
}

// WithLogger enables informational logging. nil means no logging.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithNormalization applies Unicode NFC to characters before lookup, so
// CJK compatibility ideographs such as U+F900 find their unified form
// (U+8C48 豈).
// Off by default: the table is matched exactly.
func WithNormalization(on bool) Option {
	return func(e *Engine) { e.normalize = on }
}

// Open opens the table read-only and prepares the lookup query. It makes a
// single attempt; on failure it returns a *ConnectionError and no Engine.
func Open(opts ...Option) (*Engine, error) {
	e := &Engine{path: DefaultPath}
	for _, opt := range opts {
		opt(e)
	}

	conn, err := sql.Open("sqlite3", db.ReadOnlyDSN(e.path))
	if err != nil {
		return nil, newConnectionError(e.path, err)
	}
	// One handle for the Engine's lifetime, holding the prepared statement.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := e.prepare(conn); err != nil {
		conn.Close()
		return nil, newConnectionError(e.path, err)
	}
	e.logf("opened %s", e.path)
	return e, nil
}

func (e *Engine) prepare(conn *sql.DB) error {
	if err := conn.Ping(); err != nil {
		return err
	}
	// Reading sqlite_master is the first access to the file contents, so
	// this is where non-databases and corruption surface.
	if err := db.CheckSchema(conn); err != nil {
		return err
	}
	stmt, err := conn.Prepare(db.LookupQuery)
	if err != nil {
		return fmt.Errorf("prepare lookup: %w", err)
	}
	e.conn = conn
	e.lookup = stmt
	return nil
}

// Path returns the location of the open table.
func (e *Engine) Path() string { return e.path }

// HowToType is HowToTypeContext with a background context.
func (e *Engine) HowToType(character string, v cangjie.Version) ([]cangjie.Code, error) {
	return e.HowToTypeContext(context.Background(), character, v)
}

// HowToTypeContext returns every code that types character under version v,
// in table order. The character is matched exactly against single
// characters, so longer strings find nothing. No results is not an error.
//
// A failing query returns a *QueryError, a stored code that cannot be
// decoded a *SchemaError. Either way no codes are returned.
func (e *Engine) HowToTypeContext(ctx context.Context, character string, v cangjie.Version) ([]cangjie.Code, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	n, ok := v.Discriminator()
	if !ok {
		return nil, fmt.Errorf("%w: %s", cangjie.ErrUnknownVersion, v)
	}
	if e.normalize {
		character = norm.NFC.String(character)
	}

	rows, err := e.lookup.QueryContext(ctx, character, n)
	if err != nil {
		return nil, e.queryError(character, v, err)
	}
	defer rows.Close()

	var codes []cangjie.Code
	for rows.Next() {
		var raw any
		if err := rows.Scan(&raw); err != nil {
			return nil, e.queryError(character, v, err)
		}
		code, err := decodeCode(raw)
		if err != nil {
			return nil, &SchemaError{Character: character, Version: v, Value: raw, Err: err}
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, e.queryError(character, v, err)
	}

	e.logf("%q version %s: %d code(s)", character, v, len(codes))
	return codes, nil
}

func (e *Engine) queryError(character string, v cangjie.Version, err error) error {
	// Close may have raced with the query.
	if e.closed.Load() {
		return ErrClosed
	}
	return newQueryError(character, v, err)
}

// decodeCode turns a scanned code column into a Code. libcangjie stores
// codes as TEXT of letters a-z.
func decodeCode(raw any) (cangjie.Code, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("code column holds %T, not text", raw)
	}
	if s == "" {
		return nil, errors.New("empty code")
	}
	return cangjie.ParseIdentifiers(s)
}

// Close releases the prepared statement and the connection. Queries on a
// closed Engine return ErrClosed. Close is idempotent.
func (e *Engine) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	stmtErr := e.lookup.Close()
	connErr := e.conn.Close()
	return errors.Join(stmtErr, connErr)
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
