// Package db describes libcangjie's character table and how to reach it
// through go-sqlite3.
package db

import (
	"errors"
	"fmt"
	"strings"
)

// schemaSQL mirrors the tables libcangjie ships in cangjie.db. Only the
// columns read by LookupQuery matter to this module.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS chars (
    char_index  INTEGER PRIMARY KEY ASC,
    chchar      TEXT UNIQUE NOT NULL,
    simpchar    TEXT,
    zh          INTEGER DEFAULT 0,
    big5        INTEGER DEFAULT 0,
    hkscs       INTEGER DEFAULT 0,
    zhuyin      INTEGER DEFAULT 0,
    kanji       INTEGER DEFAULT 0,
    hiragana    INTEGER DEFAULT 0,
    katakana    INTEGER DEFAULT 0,
    punct       INTEGER DEFAULT 0,
    symbol      INTEGER DEFAULT 0,
    frequency   INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS codes (
    char_index  INTEGER NOT NULL REFERENCES chars(char_index),
    version     INTEGER NOT NULL,
    code        TEXT,
    frequency   INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS i_codes_char_version ON codes(char_index, version);
CREATE INDEX IF NOT EXISTS i_codes_code ON codes(version, code);
`

// LookupQuery selects the stored codes of one character (?1) for one
// version discriminator (?2), in table order.
const LookupQuery = `
SELECT codes.code
FROM chars
JOIN codes
  ON chars.char_index = codes.char_index
WHERE chars.chchar = ? AND codes.version = ?`

// RequiredTables are the tables LookupQuery reads.
var RequiredTables = []string{"chars", "codes"}

// ErrMissingTable is returned by CheckSchema when the database lacks one of
// RequiredTables.
var ErrMissingTable = errors.New("missing table")

// CheckSchema verifies that every table in RequiredTables exists.
func CheckSchema(db DBExecutor) error {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scan table name: %w", err)
		}
		found[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list tables: %w", err)
	}

	var missing []string
	for _, t := range RequiredTables {
		if !found[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingTable, strings.Join(missing, ", "))
	}
	return nil
}
