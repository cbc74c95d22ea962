package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	intdb "smartcab/internal/db"
	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
)

// UserRepository owns SQL against the users table. phone carries a unique
// index; that index, not the pre-insert lookup, is what makes find-or-create
// safe under concurrent logins.
type UserRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r UserRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

const userColumns = `id, username, email, password, full_name, phone`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Phone)
	return u, err
}

// GetByPhone looks up the identity by its de facto key.
func (r UserRepository) GetByPhone(ctx context.Context, phone string) (models.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = ? LIMIT 1`, phone)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.StorageError{Op: "user get by phone", Err: err}
	}
	return u, nil
}

// GetByID returns the identity by numeric id.
func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, domain.StorageError{Op: "user get by id", Err: err}
	}
	return u, nil
}

// Insert stores a new identity. A duplicate phone from a concurrent login is
// reported as ConflictError so the caller can resolve it as a lookup.
func (r UserRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, email, password, full_name, phone)
		VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.Password, u.FullName, u.Phone)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "phone", Err: err}
		}
		return 0, domain.StorageError{Op: "user insert", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StorageError{Op: "user insert id", Err: err}
	}
	return id, nil
}
