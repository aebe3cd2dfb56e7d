package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/placement-portal/internal/model"
)

// DriveRepo encapsulates all queries against the `placement_drives`
// table. Ownership is enforced at the SQL level: every company-scoped
// mutation filters by company_id so a company can never touch another
// company's drive.
type DriveRepo struct{ DB *sql.DB }

func NewDriveRepo(db *sql.DB) *DriveRepo { return &DriveRepo{DB: db} }

const driveCols = "id,company_id,job_title,job_description,eligibility_criteria,required_skills,experience_years,salary_range,application_deadline,status,created_at,updated_at"

func scanDrive(row *sql.Row) (model.PlacementDrive, error) {
	var d model.PlacementDrive
	var criteria sql.NullString
	err := row.Scan(&d.ID, &d.CompanyID, &d.JobTitle, &d.JobDescription, &criteria,
		&d.RequiredSkills, &d.ExperienceYears, &d.SalaryRange, &d.Deadline,
		&d.Status, &d.CreatedAt, &d.UpdatedAt)
	d.EligibilityCriteria = criteria.String
	return d, err
}

// Create inserts a new drive. On success the ID field is populated and
// the status is the schema default PENDING.
func (r *DriveRepo) Create(ctx context.Context, d *model.PlacementDrive) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO placement_drives
			(company_id, job_title, job_description, eligibility_criteria,
			 required_skills, experience_years, salary_range, application_deadline)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.CompanyID, d.JobTitle, d.JobDescription, d.EligibilityCriteria,
		d.RequiredSkills, d.ExperienceYears, d.SalaryRange, d.Deadline)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	d.Status = "PENDING"
	return nil
}

// GetByID fetches a drive regardless of owner.
func (r *DriveRepo) GetByID(ctx context.Context, id uint64) (model.PlacementDrive, error) {
	d, err := scanDrive(r.DB.QueryRowContext(ctx,
		"SELECT "+driveCols+" FROM placement_drives WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrDriveNotFound
	}
	return d, err
}

// GetByIDAndCompany fetches a drive only if it belongs to the given
// company. A drive owned by someone else reads as not found so the
// response does not leak its existence.
func (r *DriveRepo) GetByIDAndCompany(ctx context.Context, id, companyID uint64) (model.PlacementDrive, error) {
	d, err := scanDrive(r.DB.QueryRowContext(ctx,
		"SELECT "+driveCols+" FROM placement_drives WHERE id=? AND company_id=? LIMIT 1", id, companyID))
	if errors.Is(err, sql.ErrNoRows) {
		return d, ErrDriveNotFound
	}
	return d, err
}

// UpdateDetails rewrites the editable fields of an owned drive. Returns
// ErrDriveNotFound when the drive does not exist or is owned by another
// company.
func (r *DriveRepo) UpdateDetails(ctx context.Context, d *model.PlacementDrive) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE placement_drives
		 SET job_title=?, job_description=?, eligibility_criteria=?,
		     required_skills=?, experience_years=?, salary_range=?, application_deadline=?
		 WHERE id=? AND company_id=?`,
		d.JobTitle, d.JobDescription, d.EligibilityCriteria,
		d.RequiredSkills, d.ExperienceYears, d.SalaryRange, d.Deadline,
		d.ID, d.CompanyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByIDAndCompany(ctx, d.ID, d.CompanyID); err != nil {
			return err
		}
	}
	return nil
}

// SetStatus writes a new drive status. Transition validity is checked by
// the caller against the workflow tables.
func (r *DriveRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE placement_drives SET status=? WHERE id=?", status, id)
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

// Delete removes an owned drive. Applications referencing it are removed
// by the ON DELETE CASCADE foreign key.
func (r *DriveRepo) Delete(ctx context.Context, id, companyID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM placement_drives WHERE id=? AND company_id=?", id, companyID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDriveNotFound
	}
	return nil
}

// ListByCompany returns all drives owned by a company, newest first.
func (r *DriveRepo) ListByCompany(ctx context.Context, companyID uint64) ([]model.PlacementDrive, error) {
	return r.list(ctx,
		"SELECT "+driveCols+" FROM placement_drives WHERE company_id=? ORDER BY created_at DESC, id DESC",
		companyID)
}

// ListAll returns every drive, for the admin dashboard.
func (r *DriveRepo) ListAll(ctx context.Context) ([]model.PlacementDrive, error) {
	return r.list(ctx, "SELECT "+driveCols+" FROM placement_drives ORDER BY id")
}

func (r *DriveRepo) list(ctx context.Context, q string, args ...any) ([]model.PlacementDrive, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlacementDrive
	for rows.Next() {
		var d model.PlacementDrive
		var criteria sql.NullString
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.JobTitle, &d.JobDescription, &criteria,
			&d.RequiredSkills, &d.ExperienceYears, &d.SalaryRange, &d.Deadline,
			&d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.EligibilityCriteria = criteria.String
		out = append(out, d)
	}
	return out, rows.Err()
}

// Count returns the total number of drives.
func (r *DriveRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM placement_drives").Scan(&n)
	return n, err
}
