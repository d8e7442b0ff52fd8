package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/finflow/finflow/internal/models"
)

// MySQLUserRepository implements user persistence against a MySQL database.
type MySQLUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository with the given
// database connection. db must be a valid *sql.DB connected to MySQL.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{DB: db}
}

// CreateUser inserts a new user row and fills in the generated UID.
// A unique-key violation on email is returned as models.ErrDuplicate;
// under concurrent registration the database constraint guarantees exactly
// one insert succeeds.
func (r *MySQLUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (name, email, password, investment_profile, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.Name, user.Email, user.PasswordHash, nullString(user.InvestmentProfile), user.CreatedAt)
	if err != nil {
		if isDuplicate(err) {
			return models.ErrDuplicate
		}
		return fmt.Errorf("CreateUser: %w", err)
	}

	uid, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("CreateUser last insert id: %w", err)
	}
	user.UID = uid
	return nil
}

// GetUserByEmail fetches a user by email. Returns models.ErrNotFound when
// no such user exists.
func (r *MySQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `
		SELECT uid, name, email, password, investment_profile, created_at
		  FROM users WHERE email = ?
	`, email)
}

// GetUserByID fetches a user by UID. Returns models.ErrNotFound when no
// such user exists.
func (r *MySQLUserRepository) GetUserByID(ctx context.Context, uid int64) (*models.User, error) {
	return r.getUser(ctx, `
		SELECT uid, name, email, password, investment_profile, created_at
		  FROM users WHERE uid = ?
	`, uid)
}

func (r *MySQLUserRepository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	var profile sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).
		Scan(&user.UID, &user.Name, &user.Email, &user.PasswordHash, &profile, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.InvestmentProfile = profile.String
	return &user, nil
}

// UpdateUser persists the mutable fields of the given user.
func (r *MySQLUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE users SET name = ?, password = ?, investment_profile = ?
		 WHERE uid = ?
	`, user.Name, user.PasswordHash, nullString(user.InvestmentProfile), user.UID)
	if err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		// MySQL also reports 0 when the row matched but nothing changed;
		// confirm the row is really gone before reporting not found.
		if _, err := r.GetUserByID(ctx, user.UID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteUser removes the user with the given UID. Returns
// models.ErrNotFound when no row was deleted.
func (r *MySQLUserRepository) DeleteUser(ctx context.Context, uid int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = ?`, uid)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
