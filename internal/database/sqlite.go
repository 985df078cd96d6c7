package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens the board database file at path and brings its schema up
// to date. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer at a time; also keeps ":memory:" on a single connection.
	conn.SetMaxOpenConns(1)

	if err := migrateSQLite(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return conn, nil
}

func migrateSQLite(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	err = conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return fmt.Errorf("checking migration version: %w", err)
	}

	if version < 1 {
		return sqliteMigrate001(conn)
	}
	return nil
}

func sqliteMigrate001(conn *sql.DB) error {
	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning migration transaction: %w", err)
	}
	defer tx.Rollback()

	schema := `
		CREATE TABLE IF NOT EXISTS boards (
			id TEXT PRIMARY KEY,
			board_number INTEGER NOT NULL UNIQUE CHECK (board_number > 0),
			location TEXT NOT NULL,
			size TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'available',
			price_per_season INTEGER NOT NULL CHECK (price_per_season > 0),
			sponsor_name TEXT,
			sponsor_contact_name TEXT,
			sponsor_email TEXT,
			sponsor_phone TEXT,
			sponsor_website TEXT,
			sponsor_logo TEXT,
			contract_start TIMESTAMP,
			contract_end TIMESTAMP,
			renewal_reminder TIMESTAMP,
			paid_amount INTEGER,
			payment_status TEXT,
			contract_notes TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK ((status = 'available') = (sponsor_name IS NULL)),
			CHECK ((sponsor_name IS NULL) = (contract_start IS NULL)),
			CHECK (contract_end IS NULL OR contract_end > contract_start)
		);

		CREATE INDEX IF NOT EXISTS idx_boards_location ON boards(location);
		CREATE INDEX IF NOT EXISTS idx_boards_status ON boards(status);
	`
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("applying migration 001: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (1)"); err != nil {
		return fmt.Errorf("recording migration 001: %w", err)
	}
	return tx.Commit()
}
