package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/placement-portal/internal/model"
	"github.com/iliyamo/placement-portal/internal/utils"
)

// AccountRepo encapsulates all queries against the `accounts` table.
type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = "id,full_name,email,password_hash,role,is_active,created_at,updated_at"

// Create hashes the password, inserts the account and returns its ID.
// Emails are normalized to lower case so uniqueness is case-insensitive.
func (r *AccountRepo) Create(ctx context.Context, fullName, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (full_name, email, password_hash, role) VALUES (?,?,?,?)",
		fullName, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAccountNotFound
	}
	return a, err
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+accountCols+" FROM accounts WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.FullName, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAccountNotFound
	}
	return a, err
}

// SetActive flips the is_active flag. Blacklisting a company or student
// deactivates its account through this method; reactivation is a separate
// explicit admin action and never happens implicitly on unblacklist.
func (r *AccountRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish missing rows from no-op updates.
		var one int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM accounts WHERE id=?", id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAccountNotFound
			}
			return err
		}
	}
	return nil
}

// UpdateFullName changes the display name of an account.
func (r *AccountRepo) UpdateFullName(ctx context.Context, id uint64, fullName string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET full_name=? WHERE id=?", fullName, id)
	return err
}

// CountByRole returns the number of accounts holding the given role.
func (r *AccountRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM accounts WHERE role=?", role).Scan(&n)
	return n, err
}
