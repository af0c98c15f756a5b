// Package dbtest builds small libcangjie tables on disk for tests.
package dbtest

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/japaniel/howtotype/pkg/db"

	_ "github.com/mattn/go-sqlite3"
)

// Row is one stored code. Code is inserted as given, so tests can store
// values libcangjie never would (BLOBs, NULL, invalid letters).
type Row struct {
	Char    string
	Version int
	Code    any
}

// Sample holds real libcangjie entries plus a character with two codes,
// stored out of lexicographic order.
var Sample = []Row{
	{Char: "喵", Version: 3, Code: "rtw"},
	{Char: "喵", Version: 5, Code: "rtw"},
	{Char: "屬", Version: 3, Code: "syyi"},
	{Char: "屬", Version: 5, Code: "sewi"},
	{Char: "豈", Version: 3, Code: "umrt"},
	{Char: "兀", Version: 3, Code: "mu"},
	{Char: "兀", Version: 3, Code: "mlu"},
}

// NewTable writes rows into a fresh database under t.TempDir and returns its
// path. Rows sharing a character share one chars entry, and codes keep the
// order of rows.
func NewTable(t testing.TB, rows ...Row) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cangjie.db")
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer conn.Close()

	if err := db.InitDB(conn); err != nil {
		t.Fatalf("init fixture db: %v", err)
	}

	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	ids := make(map[string]int64)
	for _, r := range rows {
		id, ok := ids[r.Char]
		if !ok {
			res, err := tx.Exec(`INSERT INTO chars (chchar) VALUES (?)`, r.Char)
			if err != nil {
				tx.Rollback()
				t.Fatalf("insert char %q: %v", r.Char, err)
			}
			if id, err = res.LastInsertId(); err != nil {
				tx.Rollback()
				t.Fatalf("char id %q: %v", r.Char, err)
			}
			ids[r.Char] = id
		}
		if _, err := tx.Exec(`INSERT INTO codes (char_index, version, code) VALUES (?, ?, ?)`, id, r.Version, r.Code); err != nil {
			tx.Rollback()
			t.Fatalf("insert code %v for %q: %v", r.Code, r.Char, err)
		}
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return path
}

// NewSampleTable is NewTable(t, Sample...).
func NewSampleTable(t testing.TB) string {
	t.Helper()
	return NewTable(t, Sample...)
}
