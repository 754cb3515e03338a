package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"ryt/internal/domain/consts"
	"ryt/internal/models"

	"github.com/Masterminds/squirrel"
)

// ErrNoEntry is returned when a history entry does not exist.
var ErrNoEntry = errors.New("no such history entry")

// HistoryStore holds a pointer to the sql.DB.
type HistoryStore struct {
	DB *sql.DB
}

// HistoryFilter narrows List results. Zero values disable a filter.
type HistoryFilter struct {
	Since time.Time
	Limit uint64
}

// GetHistoryStore returns a history store instance with injected database.
func GetHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{
		DB: db,
	}
}

// RecordStart inserts a started entry for req and returns its ID.
func (hs *HistoryStore) RecordStart(ctx context.Context, runID string, req models.DownloadRequest) (int64, error) {
	query := squirrel.
		Insert(consts.DBHistory).
		Columns(
			consts.QHistRunID,
			consts.QHistURL,
			consts.QHistContentType,
			consts.QHistFormat,
			consts.QHistQuality,
			consts.QHistStatus,
			consts.QHistStartedAt,
		).
		Values(
			runID,
			req.URL,
			string(req.ContentType),
			string(req.Format),
			req.QualityString(),
			consts.HistStarted,
			now(),
		).
		RunWith(hs.DB)

	res, err := query.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to record download of %q: %w", req.URL, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get history ID for %q: %w", req.URL, err)
	}
	return id, nil
}

// RecordFinish marks entry id succeeded, or failed with dlErr.
func (hs *HistoryStore) RecordFinish(ctx context.Context, id int64, dlErr error) error {
	status := consts.HistSucceeded
	var errText sql.NullString
	if dlErr != nil {
		status = consts.HistFailed
		errText = sql.NullString{String: dlErr.Error(), Valid: true}
	}

	query := squirrel.
		Update(consts.DBHistory).
		Set(consts.QHistStatus, status).
		Set(consts.QHistError, errText).
		Set(consts.QHistFinishedAt, now()).
		Where(squirrel.Eq{consts.QHistID: id}).
		RunWith(hs.DB)

	res, err := query.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update history entry %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNoEntry, id)
	}
	return nil
}

// List returns entries newest first.
func (hs *HistoryStore) List(ctx context.Context, filter HistoryFilter) ([]models.HistoryEntry, error) {
	query := selectHistory().
		OrderBy(consts.QHistStartedAt+" DESC", consts.QHistID+" DESC")

	if !filter.Since.IsZero() {
		query = query.Where(squirrel.GtOrEq{consts.QHistStartedAt: filter.Since.UTC().Truncate(time.Second)})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	rows, err := query.RunWith(hs.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return entries, nil
}

// Get returns the entry with id.
func (hs *HistoryStore) Get(ctx context.Context, id int64) (*models.HistoryEntry, error) {
	row := selectHistory().
		Where(squirrel.Eq{consts.QHistID: id}).
		RunWith(hs.DB).
		QueryRowContext(ctx)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNoEntry, id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Export writes the filtered entries to w as indented JSON.
func (hs *HistoryStore) Export(ctx context.Context, w io.Writer, filter HistoryFilter) (int, error) {
	entries, err := hs.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return 0, fmt.Errorf("failed to encode history: %w", err)
	}
	return len(entries), nil
}

func selectHistory() squirrel.SelectBuilder {
	return squirrel.
		Select(
			consts.QHistID,
			consts.QHistRunID,
			consts.QHistURL,
			consts.QHistContentType,
			consts.QHistFormat,
			consts.QHistQuality,
			consts.QHistStatus,
			consts.QHistError,
			consts.QHistStartedAt,
			consts.QHistFinishedAt,
		).
		From(consts.DBHistory)
}

// scanEntry scans one history row.
func scanEntry(row squirrel.RowScanner) (models.HistoryEntry, error) {
	var (
		e        models.HistoryEntry
		quality  sql.NullString
		errText  sql.NullString
		finished sql.NullTime
	)
	if err := row.Scan(
		&e.ID,
		&e.RunID,
		&e.URL,
		&e.ContentType,
		&e.Format,
		&quality,
		&e.Status,
		&errText,
		&e.StartedAt,
		&finished,
	); err != nil {
		return e, err
	}
	e.Quality = quality.String
	e.Error = errText.String
	if finished.Valid {
		t := finished.Time
		e.FinishedAt = &t
	}
	return e, nil
}

// now returns the current time as stored in the database.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
