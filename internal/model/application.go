package model

import "time"

// Application joins one student account to one placement drive. The
// (student_id, drive_id) pair is unique at the database level so a
// concurrent duplicate apply is rejected by the storage engine rather
// than by application code.
type Application struct {
	ID        uint64    // applications.id
	StudentID uint64    // applications.student_id (accounts.id)
	DriveID   uint64    // applications.drive_id
	Status    string    // applications.status
	AppliedAt time.Time // applications.applied_at
}
