package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/abitur-registration/internal/models"
)

// AdminRepository manages admin console accounts.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByUsername returns the account with the exact username or sql.ErrNoRows.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	const query = `SELECT id, benutzername, passwort_hash FROM admins WHERE benutzername = $1 LIMIT 1`
	var admin models.AdminAccount
	if err := r.db.GetContext(ctx, &admin, query, username); err != nil {
		return nil, translate(err, "find admin by username")
	}
	return &admin, nil
}

// FindByID returns the account or sql.ErrNoRows.
func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*models.AdminAccount, error) {
	const query = `SELECT id, benutzername, passwort_hash FROM admins WHERE id = $1`
	var admin models.AdminAccount
	if err := r.db.GetContext(ctx, &admin, query, id); err != nil {
		return nil, translate(err, "find admin")
	}
	return &admin, nil
}

// List returns all accounts sorted by username.
func (r *AdminRepository) List(ctx context.Context) ([]models.AdminAccount, error) {
	const query = `SELECT id, benutzername, passwort_hash FROM admins ORDER BY benutzername`
	admins := []models.AdminAccount{}
	if err := r.db.SelectContext(ctx, &admins, query); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// Create inserts an account. A taken username yields ErrDuplicate.
func (r *AdminRepository) Create(ctx context.Context, admin *models.AdminAccount) error {
	const query = `INSERT INTO admins (benutzername, passwort_hash) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, admin.Username, admin.PasswordHash).Scan(&admin.ID); err != nil {
		return translate(err, "create admin")
	}
	return nil
}

// UpdatePassword replaces the stored hash. A missing account yields sql.ErrNoRows.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET passwort_hash = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin password rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWithGuard deletes an account while holding a table lock, so two concurrent deletes can
// never remove the last remaining admin. guard receives the account total before the delete and
// aborts the transaction by returning an error. A missing target yields sql.ErrNoRows.
func (r *AdminRepository) DeleteWithGuard(ctx context.Context, id int64, guard func(total int) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin admin delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock admins: %w", err)
	}

	var total int
	if err = tx.GetContext(ctx, &total, `SELECT COUNT(*) FROM admins`); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if guard != nil {
		if err = guard(total); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete admin rows affected: %w", err)
	}
	if affected == 0 {
		err = ErrNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit admin delete: %w", err)
	}
	return nil
}
