package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/placement-portal/internal/model"
)

// CompanyRepo encapsulates all queries against the `company_profiles`
// table. Moderation writes (approval, blacklist) live here; the cascading
// account deactivation on blacklist is composed in the handler so both
// effects happen in the same operation.
type CompanyRepo struct{ DB *sql.DB }

func NewCompanyRepo(db *sql.DB) *CompanyRepo { return &CompanyRepo{DB: db} }

const companyCols = "id,account_id,company_name,hr_contact,website,approval_status,is_blacklisted,blacklist_reason,created_at,updated_at"

func scanCompany(row *sql.Row) (model.CompanyProfile, error) {
	var c model.CompanyProfile
	var reason sql.NullString
	err := row.Scan(&c.ID, &c.AccountID, &c.CompanyName, &c.HRContact, &c.Website,
		&c.ApprovalStatus, &c.IsBlacklisted, &reason, &c.CreatedAt, &c.UpdatedAt)
	if reason.Valid {
		c.BlacklistReason = &reason.String
	}
	return c, err
}

// Create inserts a company profile for an account. The approval status
// starts at the schema default PENDING.
func (r *CompanyRepo) Create(ctx context.Context, c *model.CompanyProfile) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO company_profiles (account_id, company_name, hr_contact, website) VALUES (?,?,?,?)",
		c.AccountID, c.CompanyName, c.HRContact, c.Website)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	c.ApprovalStatus = "PENDING"
	return nil
}

// GetByID fetches a company profile by its ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (model.CompanyProfile, error) {
	c, err := scanCompany(r.DB.QueryRowContext(ctx,
		"SELECT "+companyCols+" FROM company_profiles WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCompanyNotFound
	}
	return c, err
}

// GetByAccountID fetches the company profile owned by an account.
func (r *CompanyRepo) GetByAccountID(ctx context.Context, accountID uint64) (model.CompanyProfile, error) {
	c, err := scanCompany(r.DB.QueryRowContext(ctx,
		"SELECT "+companyCols+" FROM company_profiles WHERE account_id=? LIMIT 1", accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCompanyNotFound
	}
	return c, err
}

// List returns all company profiles, optionally filtered by a
// case-insensitive substring of the company name.
func (r *CompanyRepo) List(ctx context.Context, search string) ([]model.CompanyProfile, error) {
	q := "SELECT " + companyCols + " FROM company_profiles"
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		q += " WHERE LOWER(company_name) LIKE ?"
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	q += " ORDER BY id"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CompanyProfile
	for rows.Next() {
		var c model.CompanyProfile
		var reason sql.NullString
		if err := rows.Scan(&c.ID, &c.AccountID, &c.CompanyName, &c.HRContact, &c.Website,
			&c.ApprovalStatus, &c.IsBlacklisted, &reason, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if reason.Valid {
			c.BlacklistReason = &reason.String
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateDetails rewrites the editable company fields. Moderation columns
// are never touched here.
func (r *CompanyRepo) UpdateDetails(ctx context.Context, id uint64, companyName, hrContact, website string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE company_profiles SET company_name=?, hr_contact=?, website=? WHERE id=?",
		companyName, hrContact, website, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SetApprovalStatus writes a new approval status. Transition validity is
// checked by the caller against the workflow tables before this write.
func (r *CompanyRepo) SetApprovalStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE company_profiles SET approval_status=? WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SetBlacklist toggles the blacklist flag. The reason is stored only while
// blacklisted; unblacklisting always clears it.
func (r *CompanyRepo) SetBlacklist(ctx context.Context, id uint64, blacklisted bool, reason string) error {
	var stored sql.NullString
	if blacklisted && strings.TrimSpace(reason) != "" {
		stored = sql.NullString{String: strings.TrimSpace(reason), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE company_profiles SET is_blacklisted=?, blacklist_reason=? WHERE id=?",
		blacklisted, stored, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the total number of company profiles.
func (r *CompanyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM company_profiles").Scan(&n)
	return n, err
}
