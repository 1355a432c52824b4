package database

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hashicorp/go-multierror"
	_ "github.com/lib/pq"

	"github.com/brewandbean/cafe/config"
)

// Cafe is the shared database handle for all dbhelper functions.
var Cafe *sql.DB

func ConnectAndMigrate() error {
	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	Cafe = db
	return migrateUp(db)
}

func migrateUp(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Tx runs fn inside a transaction; commit and rollback failures are
// folded into the returned error.
func Tx(fn func(tx *sql.Tx) error) error {
	tx, err := Cafe.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierror.Append(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func ShutdownDatabase() error {
	return Cafe.Close()
}
