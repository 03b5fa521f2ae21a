package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Statements are applied in order inside one transaction. Each is safe to re-run.
var schemaStatements = []struct {
	name  string
	query string
}{
	{
		name: "create abitur_jahrgaenge",
		query: `CREATE TABLE IF NOT EXISTS abitur_jahrgaenge (
    id BIGSERIAL PRIMARY KEY,
    jahrgang INTEGER NOT NULL UNIQUE CHECK (jahrgang BETWEEN 1900 AND 2100),
    aktiv BOOLEAN NOT NULL DEFAULT TRUE
)`,
	},
	{
		name: "create schueler_daten",
		query: `CREATE TABLE IF NOT EXISTS schueler_daten (
    id BIGSERIAL PRIMARY KEY,
    jahrgang_id BIGINT NOT NULL REFERENCES abitur_jahrgaenge (id),
    vorname TEXT NOT NULL,
    nachname TEXT NOT NULL,
    email TEXT NOT NULL,
    erstellt_am TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	},
	// Consent columns arrived after the first release; older tables gain them here.
	{
		name:  "add schueler_daten.datenschutz_einwilligung",
		query: `ALTER TABLE schueler_daten ADD COLUMN IF NOT EXISTS datenschutz_einwilligung BOOLEAN NOT NULL DEFAULT TRUE`,
	},
	// Added without a default so rows that predate the column stay NULL and read back as erstellt_am.
	// A default on ADD COLUMN would stamp every existing row with the migration time.
	{
		name:  "add schueler_daten.datenschutz_datum",
		query: `ALTER TABLE schueler_daten ADD COLUMN IF NOT EXISTS datenschutz_datum TIMESTAMPTZ`,
	},
	{
		name:  "default schueler_daten.datenschutz_datum",
		query: `ALTER TABLE schueler_daten ALTER COLUMN datenschutz_datum SET DEFAULT NOW()`,
	},
	{
		name:  "index schueler_daten.jahrgang_id",
		query: `CREATE INDEX IF NOT EXISTS idx_schueler_daten_jahrgang_id ON schueler_daten (jahrgang_id)`,
	},
	{
		name: "create admins",
		query: `CREATE TABLE IF NOT EXISTS admins (
    id BIGSERIAL PRIMARY KEY,
    benutzername TEXT NOT NULL UNIQUE,
    passwort_hash TEXT NOT NULL
)`,
	},
}

const seedAdminQuery = `INSERT INTO admins (benutzername, passwort_hash)
SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM admins)`

// BootstrapAdmin is the account seeded when the admins table is empty.
type BootstrapAdmin struct {
	Username     string
	PasswordHash string
}

// MigrateResult reports what the initialization changed.
type MigrateResult struct {
	Statements  int
	AdminSeeded bool
}

// Migrate creates missing tables, adds columns introduced after the first schema and seeds the
// bootstrap admin into an empty admins table. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB, admin BootstrapAdmin) (res MigrateResult, err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin migration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range schemaStatements {
		if _, err = tx.ExecContext(ctx, stmt.query); err != nil {
			return res, fmt.Errorf("%s: %w", stmt.name, err)
		}
		res.Statements++
	}

	if admin.Username != "" && admin.PasswordHash != "" {
		var result sql.Result
		result, err = tx.ExecContext(ctx, seedAdminQuery, admin.Username, admin.PasswordHash)
		if err != nil {
			return res, fmt.Errorf("seed bootstrap admin: %w", err)
		}
		affected, _ := result.RowsAffected()
		res.AdminSeeded = affected > 0
	}

	if err = tx.Commit(); err != nil {
		return res, fmt.Errorf("commit migration: %w", err)
	}
	return res, nil
}
