package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/placement-portal/internal/model"
)

// ApplicationRepo encapsulates all queries against the `applications`
// table. Duplicate inserts are rejected by the unique key on
// (student_id, drive_id), so a concurrent second apply surfaces as
// ErrDuplicateApplication instead of a second row.
type ApplicationRepo struct{ DB *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{DB: db} }

// Create inserts an application at the initial APPLIED status and returns
// its ID.
func (r *ApplicationRepo) Create(ctx context.Context, studentID, driveID uint64) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO applications (student_id, drive_id) VALUES (?,?)",
		studentID, driveID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrDuplicateApplication
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (model.Application, error) {
	var a model.Application
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,student_id,drive_id,status,applied_at FROM applications WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.StudentID, &a.DriveID, &a.Status, &a.AppliedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrApplicationNotFound
	}
	return a, err
}

// GetByIDForCompany fetches an application only when its drive belongs to
// the given company. Applications on other companies' drives read as not
// found.
func (r *ApplicationRepo) GetByIDForCompany(ctx context.Context, id, companyID uint64) (model.Application, error) {
	var a model.Application
	err := r.DB.QueryRowContext(ctx,
		`SELECT a.id, a.student_id, a.drive_id, a.status, a.applied_at
		 FROM applications a
		 JOIN placement_drives d ON d.id = a.drive_id
		 WHERE a.id=? AND d.company_id=? LIMIT 1`,
		id, companyID).Scan(&a.ID, &a.StudentID, &a.DriveID, &a.Status, &a.AppliedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrApplicationNotFound
	}
	return a, err
}

// SetStatusAndNotify writes the new status and the student's notification
// row in one transaction, so a status change can never commit without its
// notification. Transition validity is checked by the caller against the
// workflow tables.
func (r *ApplicationRepo) SetStatusAndNotify(ctx context.Context, id uint64, status string, studentID uint64, message string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE applications SET status=? WHERE id=?", status, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO notifications (student_id, message) VALUES (?,?)",
		studentID, message); err != nil {
		return err
	}
	return tx.Commit()
}

// DriveApplicationRow is the company-facing projection of an application
// joined with the applicant's account and profile.
type DriveApplicationRow struct {
	ID            uint64 `json:"id"`
	StudentID     uint64 `json:"student_id"`
	StudentName   string `json:"student_name"`
	StudentEmail  string `json:"student_email"`
	Qualification string `json:"qualification"`
	Skills        string `json:"skills"`
	ResumePath    string `json:"resume_path"`
	Status        string `json:"status"`
	AppliedAt     string `json:"applied_at"`
}

// ListByDrive returns all applications for one drive with applicant
// details, oldest first.
func (r *ApplicationRepo) ListByDrive(ctx context.Context, driveID uint64) ([]DriveApplicationRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.student_id, acc.full_name, acc.email,
		        COALESCE(sp.qualification, ''), COALESCE(sp.skills, ''), COALESCE(sp.resume_path, ''),
		        a.status, DATE_FORMAT(a.applied_at, '%Y-%m-%d %T')
		 FROM applications a
		 JOIN accounts acc ON acc.id = a.student_id
		 LEFT JOIN student_profiles sp ON sp.account_id = a.student_id
		 WHERE a.drive_id=?
		 ORDER BY a.applied_at ASC, a.id ASC`,
		driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DriveApplicationRow
	for rows.Next() {
		var d DriveApplicationRow
		if err := rows.Scan(&d.ID, &d.StudentID, &d.StudentName, &d.StudentEmail,
			&d.Qualification, &d.Skills, &d.ResumePath, &d.Status, &d.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// HistoryRow is the student-facing projection of an application joined
// with the drive and its company.
type HistoryRow struct {
	ID          uint64 `json:"id"`
	DriveID     uint64 `json:"drive_id"`
	JobTitle    string `json:"job_title"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
	AppliedAt   string `json:"applied_at"`
}

// ListByStudent returns the student's application history, newest first.
func (r *ApplicationRepo) ListByStudent(ctx context.Context, studentID uint64) ([]HistoryRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.drive_id, d.job_title, c.company_name, a.status,
		        DATE_FORMAT(a.applied_at, '%Y-%m-%d %T')
		 FROM applications a
		 JOIN placement_drives d ON d.id = a.drive_id
		 JOIN company_profiles c ON c.id = d.company_id
		 WHERE a.student_id=?
		 ORDER BY a.applied_at DESC, a.id DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.ID, &h.DriveID, &h.JobTitle, &h.CompanyName, &h.Status, &h.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ListAll returns every application, for the admin dashboard.
func (r *ApplicationRepo) ListAll(ctx context.Context) ([]model.Application, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,student_id,drive_id,status,applied_at FROM applications ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Application
	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ID, &a.StudentID, &a.DriveID, &a.Status, &a.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Count returns the total number of applications.
func (r *ApplicationRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM applications").Scan(&n)
	return n, err
}
