package model

import "time"

// PlacementDrive is a job posting owned by exactly one company profile.
// A drive starts in PENDING and becomes visible to students only once an
// admin approves it, its deadline has not passed, and the owning company
// is itself approved and not blacklisted.
//
// Fields:
//  ID                  – primary key identifier.
//  CompanyID           – owning company profile (cascade-deleted with it).
//  JobTitle            – title of the posting.
//  JobDescription      – full description text.
//  EligibilityCriteria – free-text eligibility requirements.
//  RequiredSkills      – free-text list of required skills.
//  ExperienceYears     – years of experience required.
//  SalaryRange         – human-readable salary range.
//  Deadline            – last date applications are accepted (date only).
//  Status              – PENDING, APPROVED, REJECTED or CLOSED.
//  CreatedAt           – timestamp of creation.
//  UpdatedAt           – timestamp of last update.
type PlacementDrive struct {
	ID                  uint64    // placement_drives.id
	CompanyID           uint64    // placement_drives.company_id
	JobTitle            string    // placement_drives.job_title
	JobDescription      string    // placement_drives.job_description
	EligibilityCriteria string    // placement_drives.eligibility_criteria
	RequiredSkills      string    // placement_drives.required_skills
	ExperienceYears     int       // placement_drives.experience_years
	SalaryRange         string    // placement_drives.salary_range
	Deadline            time.Time // placement_drives.application_deadline (DATE)
	Status              string    // placement_drives.status
	CreatedAt           time.Time // placement_drives.created_at
	UpdatedAt           time.Time // placement_drives.updated_at
}
