// Package database sets up/opens the history database.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"ryt/internal/domain/consts"

	// Package sqlite3 provides interface to SQLite3 databases.
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbDriver = "sqlite3"

	// Pragmas set per connection: WAL for concurrent writers, wait on locks, fewer fsyncs.
	dsnParams = "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on"
)

// Database holds the history database handle.
type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the database at path and initializes its tables.
func InitDB(path string) (d *Database, err error) {
	if err := os.MkdirAll(filepath.Dir(path), consts.PermsConfigDir); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	d = new(Database)
	d.DB, err = sql.Open(dbDriver, "file:"+path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	if err := d.DB.Ping(); err != nil {
		d.DB.Close()
		return nil, fmt.Errorf("failed to connect to database at path %q: %w", path, err)
	}

	if err := d.initTables(); err != nil {
		d.DB.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.DB.Close()
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := initHistoryTable(tx); err != nil {
		return err
	}

	return tx.Commit()
}
