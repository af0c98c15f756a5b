package howtotype

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/japaniel/howtotype/pkg/cangjie"
	"github.com/japaniel/howtotype/pkg/db"
)

// Kind classifies a storage failure.
type Kind int

const (
	// KindOther is any failure not covered below.
	KindOther Kind = iota
	// KindIO is an I/O failure of the storage medium.
	KindIO
	// KindNotFound means the table file is missing or cannot be opened.
	KindNotFound
	// KindCorrupt means the file is a damaged SQLite database.
	KindCorrupt
	// KindWrongFormat means the file is not a SQLite database, or lacks
	// libcangjie's tables.
	KindWrongFormat
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "I/O failure"
	case KindNotFound:
		return "not found"
	case KindCorrupt:
		return "corrupt"
	case KindWrongFormat:
		return "wrong format"
	}
	return "other"
}

// Sentinels matched by errors.Is against *ConnectionError and *QueryError
// of the corresponding Kind.
var (
	ErrIO          = errors.New("howtotype: storage I/O failure")
	ErrNotFound    = errors.New("howtotype: table not found")
	ErrCorrupt     = errors.New("howtotype: table is corrupt")
	ErrWrongFormat = errors.New("howtotype: not a libcangjie table")
)

var (
	// ErrSchema is matched by errors.Is against *SchemaError.
	ErrSchema = errors.New("howtotype: stored code violates the table schema")
	// ErrClosed is returned by queries on a closed Engine.
	ErrClosed = errors.New("howtotype: engine closed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindIO:
		return ErrIO
	case KindNotFound:
		return ErrNotFound
	case KindCorrupt:
		return ErrCorrupt
	case KindWrongFormat:
		return ErrWrongFormat
	}
	return nil
}

// ConnectionError is returned by Open when the table cannot be used.
type ConnectionError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("open %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// QueryError is returned when a lookup fails on an open Engine.
type QueryError struct {
	Character string
	Version   cangjie.Version
	Kind      Kind
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %q (version %s): %v", e.Character, e.Version, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// SchemaError reports a stored code that is not text of letters a-z. It
// means the table is damaged or incompatible.
type SchemaError struct {
	Character string
	Version   cangjie.Version
	// Value is the stored column value as scanned.
	Value any
	Err   error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("decode code of %q (version %s): %v", e.Character, e.Version, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// classify maps go-sqlite3 and schema errors to a Kind.
func classify(err error) Kind {
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code {
		case sqlite3.ErrIoErr:
			return KindIO
		case sqlite3.ErrCantOpen, sqlite3.ErrNotFound:
			return KindNotFound
		case sqlite3.ErrCorrupt:
			return KindCorrupt
		case sqlite3.ErrNotADB:
			return KindWrongFormat
		}
	}
	if errors.Is(err, db.ErrMissingTable) {
		return KindWrongFormat
	}
	return KindOther
}

func newConnectionError(path string, err error) *ConnectionError {
	return &ConnectionError{Path: path, Kind: classify(err), Err: err}
}

func newQueryError(character string, v cangjie.Version, err error) *QueryError {
	return &QueryError{Character: character, Version: v, Kind: classify(err), Err: err}
}
