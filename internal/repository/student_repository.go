package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/placement-portal/internal/model"
)

// StudentRepo encapsulates all queries against the `student_profiles` table.
type StudentRepo struct{ DB *sql.DB }

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{DB: db} }

const studentCols = "id,account_id,qualification,skills,resume_path,is_blacklisted,created_at,updated_at"

// Create inserts a student profile for an account.
func (r *StudentRepo) Create(ctx context.Context, s *model.StudentProfile) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO student_profiles (account_id, qualification, skills) VALUES (?,?,?)",
		s.AccountID, s.Qualification, s.Skills)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByAccountID fetches the student profile owned by an account.
func (r *StudentRepo) GetByAccountID(ctx context.Context, accountID uint64) (model.StudentProfile, error) {
	var s model.StudentProfile
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+studentCols+" FROM student_profiles WHERE account_id=? LIMIT 1",
		accountID).Scan(&s.ID, &s.AccountID, &s.Qualification, &s.Skills, &s.ResumePath,
		&s.IsBlacklisted, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrStudentNotFound
	}
	return s, err
}

// UpdateDetails changes the editable profile fields.
func (r *StudentRepo) UpdateDetails(ctx context.Context, accountID uint64, qualification, skills string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE student_profiles SET qualification=?, skills=? WHERE account_id=?",
		qualification, skills, accountID)
	return err
}

// SetResumePath stores the blob reference returned by the resume store.
func (r *StudentRepo) SetResumePath(ctx context.Context, accountID uint64, path string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE student_profiles SET resume_path=? WHERE account_id=?", path, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByAccountID(ctx, accountID); err != nil {
			return err
		}
	}
	return nil
}

// DirectoryRow is the admin-facing projection of a student account joined
// with its profile.
type DirectoryRow struct {
	AccountID     uint64 `json:"account_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	IsActive      bool   `json:"is_active"`
	Qualification string `json:"qualification"`
	Skills        string `json:"skills"`
	HasResume     bool   `json:"has_resume"`
	IsBlacklisted bool   `json:"is_blacklisted"`
}

// ListDirectory returns every student account with its profile in a single
// joined query, optionally filtered by a case-insensitive substring over
// name, email or the numeric id rendered as text.
func (r *StudentRepo) ListDirectory(ctx context.Context, search string) ([]DirectoryRow, error) {
	q := `SELECT acc.id, acc.full_name, acc.email, acc.is_active,
	        COALESCE(sp.qualification, ''), COALESCE(sp.skills, ''),
	        COALESCE(sp.resume_path, ''), COALESCE(sp.is_blacklisted, 0)
	 FROM accounts acc
	 LEFT JOIN student_profiles sp ON sp.account_id = acc.id
	 WHERE acc.role='STUDENT'`
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		q += " AND (LOWER(acc.full_name) LIKE ? OR LOWER(acc.email) LIKE ? OR CAST(acc.id AS CHAR) LIKE ?)"
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat, pat)
	}
	q += " ORDER BY acc.id"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DirectoryRow
	for rows.Next() {
		var d DirectoryRow
		var resumePath string
		if err := rows.Scan(&d.AccountID, &d.Name, &d.Email, &d.IsActive,
			&d.Qualification, &d.Skills, &resumePath, &d.IsBlacklisted); err != nil {
			return nil, err
		}
		d.HasResume = resumePath != ""
		out = append(out, d)
	}
	return out, rows.Err()
}

// SetBlacklist toggles the student blacklist flag.
func (r *StudentRepo) SetBlacklist(ctx context.Context, accountID uint64, blacklisted bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE student_profiles SET is_blacklisted=? WHERE account_id=?", blacklisted, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByAccountID(ctx, accountID); err != nil {
			return err
		}
	}
	return nil
}
