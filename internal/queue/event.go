// Package queue defines message payloads exchanged over the message broker.
package queue

// ApplicationStatusChangedEvent is published after a company moves an
// application to a new status. The Notification row is written
// synchronously in the same request; this event feeds the audit trail and
// any future downstream consumers without another database query.
type ApplicationStatusChangedEvent struct {
	ApplicationID uint64 `json:"application_id"`
	StudentID     uint64 `json:"student_id"`
	DriveID       uint64 `json:"drive_id"`
	DriveTitle    string `json:"drive_title"`
	CompanyName   string `json:"company_name"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	Message       string `json:"message"`
	ChangedAt     string `json:"changed_at"`
}
