package model

import "time"

// StudentProfile is the 1:1 extension of an Account with role STUDENT.
// ResumePath holds the reference returned by the blob store, never raw
// file bytes.
type StudentProfile struct {
	ID            uint64    // student_profiles.id
	AccountID     uint64    // student_profiles.account_id
	Qualification string    // student_profiles.qualification
	Skills        string    // student_profiles.skills (free text)
	ResumePath    string    // student_profiles.resume_path (blob reference)
	IsBlacklisted bool      // student_profiles.is_blacklisted
	CreatedAt     time.Time // student_profiles.created_at
	UpdatedAt     time.Time // student_profiles.updated_at
}
