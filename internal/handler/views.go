package handler

import (
	"time"

	"github.com/iliyamo/placement-portal/internal/model"
)

// JSON projections of the model structs. The models carry no tags, so
// every handler response goes through one of these views.

type companyView struct {
	ID              uint64 `json:"id"`
	AccountID       uint64 `json:"account_id"`
	CompanyName     string `json:"company_name"`
	HRContact       string `json:"hr_contact"`
	Website         string `json:"website"`
	ApprovalStatus  string `json:"approval_status"`
	IsBlacklisted   bool   `json:"is_blacklisted"`
	BlacklistReason string `json:"blacklist_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
}

func viewCompany(c model.CompanyProfile) companyView {
	v := companyView{
		ID:             c.ID,
		AccountID:      c.AccountID,
		CompanyName:    c.CompanyName,
		HRContact:      c.HRContact,
		Website:        c.Website,
		ApprovalStatus: c.ApprovalStatus,
		IsBlacklisted:  c.IsBlacklisted,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
	if c.BlacklistReason != nil {
		v.BlacklistReason = *c.BlacklistReason
	}
	return v
}

func viewCompanies(cs []model.CompanyProfile) []companyView {
	out := make([]companyView, 0, len(cs))
	for _, c := range cs {
		out = append(out, viewCompany(c))
	}
	return out
}

type driveView struct {
	ID                  uint64 `json:"id"`
	CompanyID           uint64 `json:"company_id"`
	JobTitle            string `json:"job_title"`
	JobDescription      string `json:"job_description"`
	EligibilityCriteria string `json:"eligibility_criteria"`
	RequiredSkills      string `json:"required_skills"`
	ExperienceYears     int    `json:"experience_years"`
	SalaryRange         string `json:"salary_range"`
	Deadline            string `json:"application_deadline"`
	Status              string `json:"status"`
	CreatedAt           string `json:"created_at"`
}

func viewDrive(d model.PlacementDrive) driveView {
	return driveView{
		ID:                  d.ID,
		CompanyID:           d.CompanyID,
		JobTitle:            d.JobTitle,
		JobDescription:      d.JobDescription,
		EligibilityCriteria: d.EligibilityCriteria,
		RequiredSkills:      d.RequiredSkills,
		ExperienceYears:     d.ExperienceYears,
		SalaryRange:         d.SalaryRange,
		Deadline:            d.Deadline.Format("2006-01-02"),
		Status:              d.Status,
		CreatedAt:           d.CreatedAt.Format(time.RFC3339),
	}
}

func viewDrives(ds []model.PlacementDrive) []driveView {
	out := make([]driveView, 0, len(ds))
	for _, d := range ds {
		out = append(out, viewDrive(d))
	}
	return out
}

type applicationView struct {
	ID        uint64 `json:"id"`
	StudentID uint64 `json:"student_id"`
	DriveID   uint64 `json:"drive_id"`
	Status    string `json:"status"`
	AppliedAt string `json:"applied_at"`
}

func viewApplications(as []model.Application) []applicationView {
	out := make([]applicationView, 0, len(as))
	for _, a := range as {
		out = append(out, applicationView{
			ID:        a.ID,
			StudentID: a.StudentID,
			DriveID:   a.DriveID,
			Status:    a.Status,
			AppliedAt: a.AppliedAt.Format(time.RFC3339),
		})
	}
	return out
}

type notificationView struct {
	ID        uint64 `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func viewNotifications(ns []model.Notification) []notificationView {
	out := make([]notificationView, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationView{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
