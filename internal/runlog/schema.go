package runlog

import (
	"database/sql"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
)

const (
	SchemaVersion = 1

	createTablesSQL = `
	   CREATE TABLE IF NOT EXISTS schema_versions (
	       version     INTEGER PRIMARY KEY,
	       applied_at  TEXT NOT NULL
	   );
	   CREATE TABLE IF NOT EXISTS runs (
	       timestamp    INTEGER PRIMARY KEY,
	       folder       TEXT NOT NULL,
	       files_total  INTEGER NOT NULL,
	       files_failed INTEGER NOT NULL,
	       samples      INTEGER NOT NULL,
	       pushed       INTEGER NOT NULL CHECK (pushed IN (0, 1)),
	       error        TEXT NOT NULL
	   );`

	insertRunSQL = `
    INSERT OR REPLACE INTO runs (
        timestamp, folder, files_total, files_failed, samples, pushed, error
    ) VALUES (?, ?, ?, ?, ?, ?, ?)`
)

// InitSchema creates the run-history schema and records its version.
func InitSchema(db *sql.DB) error {
	errFactory := errors.New()

	tx, err := db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.Exec(createTablesSQL); err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}

	if _, err := tx.Exec(`
        INSERT OR IGNORE INTO schema_versions (version, applied_at)
        VALUES (?, datetime('now'))
    `, SchemaVersion); err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrSchemaInit, err)
	}
	committed = true

	return nil
}

// GetSchemaVersion returns the version recorded in the database, or 0 for a
// fresh file.
func GetSchemaVersion(db *sql.DB) (int, error) {
	errFactory := errors.New()

	var version int
	err := db.QueryRow(`
        SELECT version
        FROM schema_versions
        ORDER BY version DESC
        LIMIT 1
    `).Scan(&version)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errFactory.Wrap(ErrSchemaInit, err)
	}

	return version, nil
}
