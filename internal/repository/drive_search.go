package repository

import (
	"context"
	"strings"
)

// DriveSearchQuery defines the filter & pagination for browsing open drives.
// Search is a single case-insensitive substring matched against the job
// title, the required skills and the company name (OR-combined).
type DriveSearchQuery struct {
	Search   string
	Page     int
	PageSize int
}

// OpenDriveRow is the student-facing projection of a drive joined with its
// company. Only drives currently accepting applications appear here.
type OpenDriveRow struct {
	ID              uint64 `json:"id"`
	JobTitle        string `json:"job_title"`
	JobDescription  string `json:"job_description"`
	RequiredSkills  string `json:"required_skills"`
	ExperienceYears int    `json:"experience_years"`
	SalaryRange     string `json:"salary_range"`
	Deadline        string `json:"application_deadline"`
	CompanyID       uint64 `json:"company_id"`
	CompanyName     string `json:"company_name"`
}

// SearchOpen returns drives visible to students: status APPROVED, deadline
// today or later, owning company APPROVED and not blacklisted. Results are
// ordered by ascending deadline so the most urgent drives come first.
func (r *DriveRepo) SearchOpen(ctx context.Context, q DriveSearchQuery) ([]OpenDriveRow, int64, error) {
	where := []string{
		"d.status = 'APPROVED'",
		"d.application_deadline >= CURDATE()",
		"c.approval_status = 'APPROVED'",
		"c.is_blacklisted = 0",
	}
	args := []any{}

	if s := strings.TrimSpace(q.Search); s != "" {
		where = append(where,
			"(LOWER(d.job_title) LIKE ? OR LOWER(d.required_skills) LIKE ? OR LOWER(c.company_name) LIKE ?)")
		pat := "%" + strings.ToLower(s) + "%"
		args = append(args, pat, pat, pat)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM placement_drives d
		JOIN company_profiles c ON c.id = d.company_id
		WHERE ` + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT
			d.id,
			d.job_title,
			d.job_description,
			d.required_skills,
			d.experience_years,
			d.salary_range,
			DATE_FORMAT(d.application_deadline, '%Y-%m-%d') AS deadline,
			c.id   AS company_id,
			c.company_name
		FROM placement_drives d
		JOIN company_profiles c ON c.id = d.company_id
		WHERE ` + cond + `
		ORDER BY d.application_deadline ASC, d.id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]OpenDriveRow, 0, limit)
	for rows.Next() {
		var d OpenDriveRow
		if err := rows.Scan(
			&d.ID,
			&d.JobTitle,
			&d.JobDescription,
			&d.RequiredSkills,
			&d.ExperienceYears,
			&d.SalaryRange,
			&d.Deadline,
			&d.CompanyID,
			&d.CompanyName,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
