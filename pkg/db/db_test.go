package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}
	return db
}

// TestInitDBCreatesLookupSchema verifies InitDB creates the tables and
// columns LookupQuery depends on.
func TestInitDBCreatesLookupSchema(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := CheckSchema(db); err != nil {
		t.Fatalf("CheckSchema after InitDB: %v", err)
	}

	rows, err := db.Query("PRAGMA table_info(codes)")
	if err != nil {
		t.Fatalf("pragmas: %v", err)
	}
	defer rows.Close()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var colName, ctype string
		var notnull, pk int
		var dfltVal interface{}
		if err := rows.Scan(&cid, &colName, &ctype, &notnull, &dfltVal, &pk); err != nil {
			t.Fatalf("scan col: %v", err)
		}
		cols[colName] = true
	}
	for _, c := range []string{"char_index", "version", "code"} {
		if !cols[c] {
			t.Fatalf("expected column %s in codes, got %v", c, cols)
		}
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
}

func TestLookupQuery(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO chars (char_index, chchar) VALUES (1, '屬'), (2, '喵')`); err != nil {
		t.Fatalf("insert chars: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO codes (char_index, version, code) VALUES (1, 3, 'syyi'), (1, 5, 'sewi'), (2, 3, 'rtw')`); err != nil {
		t.Fatalf("insert codes: %v", err)
	}

	tests := []struct {
		char    string
		version int
		want    []string
	}{
		{"屬", 3, []string{"syyi"}},
		{"屬", 5, []string{"sewi"}},
		{"喵", 3, []string{"rtw"}},
		{"喵", 5, nil},
		{"喵屬", 3, nil},
	}
	for _, tt := range tests {
		rows, err := db.Query(LookupQuery, tt.char, tt.version)
		if err != nil {
			t.Fatalf("query %s: %v", tt.char, err)
		}
		var got []string
		for rows.Next() {
			var code string
			if err := rows.Scan(&code); err != nil {
				t.Fatalf("scan: %v", err)
			}
			got = append(got, code)
		}
		rows.Close()
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("LookupQuery(%q, %d) = %v; want %v", tt.char, tt.version, got, tt.want)
		}
	}
}

func TestCheckSchemaMissingTables(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	err = CheckSchema(db)
	if !errors.Is(err, ErrMissingTable) {
		t.Fatalf("expected ErrMissingTable, got %v", err)
	}
	if !strings.Contains(err.Error(), "chars, codes") {
		t.Fatalf("expected both tables reported missing, got %v", err)
	}

	if _, err := db.Exec(`CREATE TABLE chars (char_index INTEGER PRIMARY KEY, chchar TEXT)`); err != nil {
		t.Fatalf("create chars: %v", err)
	}
	err = CheckSchema(db)
	if !errors.Is(err, ErrMissingTable) || strings.Contains(err.Error(), "chars") {
		t.Fatalf("expected only codes missing, got %v", err)
	}
}

func TestReadOnlyDSN(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/usr/share/libcangjie/cangjie.db", "file:/usr/share/libcangjie/cangjie.db?mode=ro&_mutex=no"},
		{"/tmp/with space/a?b.db", "file:/tmp/with%20space/a%3Fb.db?mode=ro&_mutex=no"},
		{"cangjie.db", "file:cangjie.db?mode=ro&_mutex=no"},
	}
	for _, tt := range tests {
		if got := ReadOnlyDSN(tt.path); got != tt.want {
			t.Errorf("ReadOnlyDSN(%q) = %q; want %q", tt.path, got, tt.want)
		}
	}
}

func TestReadOnlyDSNRejectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cangjie.db")
	rw, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open rw: %v", err)
	}
	if err := InitDB(rw); err != nil {
		t.Fatalf("init db: %v", err)
	}
	rw.Close()

	ro, err := sql.Open("sqlite3", ReadOnlyDSN(path))
	if err != nil {
		t.Fatalf("open ro: %v", err)
	}
	defer ro.Close()
	if err := CheckSchema(ro); err != nil {
		t.Fatalf("CheckSchema: %v", err)
	}
	if _, err := ro.Exec(`INSERT INTO chars (chchar) VALUES ('喵')`); err == nil {
		t.Fatalf("expected write through read-only DSN to fail")
	}
}

func TestReadOnlyDSNDoesNotCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	ro, err := sql.Open("sqlite3", ReadOnlyDSN(path))
	if err != nil {
		t.Fatalf("open ro: %v", err)
	}
	defer ro.Close()
	if err := ro.Ping(); err == nil {
		t.Fatalf("expected ping of missing read-only database to fail")
	}
}
