package runlog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"codeberg.org/cryolab/fridgewatch/internal/errors"
	"codeberg.org/cryolab/fridgewatch/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db *sql.DB
}

type noopRecorder struct{}

// NewService returns a Recorder backed by a local sqlite database, or a
// no-op recorder when run history is disabled.
func NewService(cfg Config) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Run history disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Msg("Run history repository initialized")

	return &repository{db: db}, nil
}

func (r *repository) Record(ctx context.Context, rec *RunRecord) error {
	errFactory := errors.New()

	if rec == nil {
		return errFactory.New(ErrInvalidRecord)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationAbort, ctx.Err())
	default:
	}

	_, err := r.db.ExecContext(ctx, insertRunSQL,
		rec.Timestamp.Unix(),
		rec.Folder,
		int64(rec.FilesTotal),
		int64(rec.FilesFailed),
		int64(rec.Samples),
		int64(boolToInt(rec.Pushed)),
		rec.Error,
	)
	if err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (r *repository) Close() error {
	errFactory := errors.New()

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}
	if err := r.db.Close(); err != nil {
		return errFactory.Wrap(ErrStorageClose, err)
	}

	return nil
}

func (*noopRecorder) Record(_ context.Context, _ *RunRecord) error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
