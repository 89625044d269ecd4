package history

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// historyMigrationsTable keeps the history schema version apart from any
// other migrate-managed schema in the same database.
const historyMigrationsTable = "bocmenh_history_migrations"

// SchemaState is the applied version of the history schema.
type SchemaState struct {
	Version uint
	Dirty   bool
	Empty   bool // no migration applied yet
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: historyMigrationsTable})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// AutoMigrate applies pending history migrations and returns the resulting
// schema state. A dirty schema is reported as an error: it needs a manual
// fix before migrations can run again.
func AutoMigrate(db *sql.DB) (SchemaState, error) {
	m, err := newMigrator(db)
	if err != nil {
		return SchemaState{}, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return SchemaState{}, fmt.Errorf("run migrations: %w", err)
	}
	return schemaState(m)
}

// CurrentSchema reports the applied history schema version without
// migrating.
func CurrentSchema(db *sql.DB) (SchemaState, error) {
	m, err := newMigrator(db)
	if err != nil {
		return SchemaState{}, err
	}
	return schemaState(m)
}

func schemaState(m *migrate.Migrate) (SchemaState, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return SchemaState{Empty: true}, nil
	}
	if err != nil {
		return SchemaState{}, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return SchemaState{Version: v, Dirty: true}, fmt.Errorf("history schema version %d is dirty", v)
	}
	return SchemaState{Version: v}, nil
}
