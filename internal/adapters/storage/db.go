package storage

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// migration is one step in the schema migration chain.
type migration struct {
	version int
	name    string
	apply   func(tx *sql.Tx) error
}

// migrations is the ordered migration chain. Append only; never edit an
// applied migration.
var migrations = []migration{
	{1, "baseline", migrateBaseline},
	{2, "waste_data_index", migrateWasteDataIndex},
}

// LatestSchemaVersion returns the highest migration version.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the database's current schema version (0 if the
// schema_version table does not exist yet).
// PRE: db is a valid connection
// POST: Returns version >= 0
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// MigrateDB applies all pending migrations, each in its own transaction.
// Before changing a file-backed database it writes a .backup copy alongside it.
// PRE: db is a valid connection; dbPath is the database file path or ":memory:"
// POST: Schema is at LatestSchemaVersion; WAL and foreign keys enabled
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	if err := backupDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to back up database before migration: %w", err)
	}

	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL DEFAULT (datetime('now')))"); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: failed to begin transaction: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: failed to record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: failed to commit: %w", m.version, err)
		}
		slog.Info("migration_applied", "version", m.version, "name", m.name)
	}

	return nil
}

// backupDatabase copies a file-backed database to <path>.backup.
// In-memory and missing databases are skipped.
func backupDatabase(dbPath string) error {
	if dbPath == "" || dbPath == ":memory:" {
		return nil
	}
	src, err := os.Open(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer src.Close()

	dst, err := os.Create(dbPath + ".backup")
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// migrateBaseline creates the four audit tables plus the account table.
//
// waste_data and water_data share the generic entity-attribute-value shape:
// one row per (audit_id, item_key). Uniqueness of item_key per audit is an
// invariant of the record store's write operations, deliberately NOT a table
// constraint; see the auditrecord package.
func migrateBaseline(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		centre_name TEXT NOT NULL,
		audit_date TEXT NOT NULL,
		auditor_name TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS waste_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id INTEGER NOT NULL,
		item_key TEXT NOT NULL,
		response TEXT,
		notes TEXT,
		FOREIGN KEY (audit_id) REFERENCES audits(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS water_data (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id INTEGER NOT NULL,
		item_key TEXT NOT NULL,
		response TEXT,
		notes TEXT,
		FOREIGN KEY (audit_id) REFERENCES audits(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS images (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		audit_id INTEGER NOT NULL,
		related_item TEXT,
		image_path TEXT NOT NULL,
		uploaded_at TEXT NOT NULL DEFAULT (datetime('now')),
		FOREIGN KEY (audit_id) REFERENCES audits(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := tx.Exec(schema)
	return err
}

// migrateWasteDataIndex speeds up per-audit key lookups on the EAV tables.
func migrateWasteDataIndex(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE INDEX IF NOT EXISTS idx_waste_data_audit_item ON waste_data(audit_id, item_key);
	CREATE INDEX IF NOT EXISTS idx_water_data_audit_item ON water_data(audit_id, item_key);
	CREATE INDEX IF NOT EXISTS idx_images_audit ON images(audit_id);
	`)
	return err
}
