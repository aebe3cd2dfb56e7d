package model

import "time"

// Notification is a persisted mailbox entry addressed to one student
// account. Rows are created as a side effect of application status
// changes and mutated only by marking all of a student's entries read.
type Notification struct {
	ID        uint64    // notifications.id
	StudentID uint64    // notifications.student_id (accounts.id)
	Message   string    // notifications.message
	IsRead    bool      // notifications.is_read
	CreatedAt time.Time // notifications.created_at
}
