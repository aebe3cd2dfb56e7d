// Package workflow defines the closed status sets and allowed transitions
// for companies, placement drives and applications.
//
// Company approval:
//
//	PENDING ──► APPROVED
//	    └─────► REJECTED
//
// Drive status:
//
//	PENDING ──► APPROVED ──► CLOSED
//	    └─────► REJECTED
//
// Application status:
//
//	APPLIED ──► SHORTLISTED ──► SELECTED ──► PLACED
//	    │            │             │
//	    └────────────┴─────────────┴──► REJECTED
//
// REJECTED, PLACED and CLOSED are terminal. Only admins move companies and
// drives out of PENDING; the owning company closes a drive and moves
// applications forward.
package workflow

import "fmt"

// Account roles as stored in accounts.role and in JWT claims.
const (
	RoleAdmin   = "ADMIN"
	RoleCompany = "COMPANY"
	RoleStudent = "STUDENT"
)

// ApprovalStatus is the company-level gate controlling drive publishing.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// DriveStatus is the lifecycle state of a placement drive.
type DriveStatus string

const (
	DrivePending  DriveStatus = "PENDING"
	DriveApproved DriveStatus = "APPROVED"
	DriveRejected DriveStatus = "REJECTED"
	DriveClosed   DriveStatus = "CLOSED"
)

// ApplicationStatus is the state of a student's application to a drive.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "APPLIED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationSelected    ApplicationStatus = "SELECTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationPlaced      ApplicationStatus = "PLACED"
)

// approvalTransitions lists every allowed (from → to) pair for company
// approval. APPROVED and REJECTED are terminal.
var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalPending: {ApprovalApproved, ApprovalRejected},
}

// driveTransitions lists every allowed (from → to) pair for drives.
// Closing is only reachable from APPROVED.
var driveTransitions = map[DriveStatus][]DriveStatus{
	DrivePending:  {DriveApproved, DriveRejected},
	DriveApproved: {DriveClosed},
}

// applicationTransitions lists every allowed (from → to) pair for
// applications. Status values accepted from clients are validated against
// the closed set rather than written through verbatim.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationApplied:     {ApplicationShortlisted, ApplicationSelected, ApplicationRejected},
	ApplicationShortlisted: {ApplicationSelected, ApplicationRejected},
	ApplicationSelected:    {ApplicationPlaced, ApplicationRejected},
	// REJECTED and PLACED are terminal — no outgoing transitions
}

// ParseApprovalStatus converts a raw string to an ApprovalStatus, returning
// an error for unknown values.
func ParseApprovalStatus(s string) (ApprovalStatus, error) {
	st := ApprovalStatus(s)
	switch st {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown approval status %q", s)
}

// ParseDriveStatus converts a raw string to a DriveStatus, returning an
// error for unknown values.
func ParseDriveStatus(s string) (DriveStatus, error) {
	st := DriveStatus(s)
	switch st {
	case DrivePending, DriveApproved, DriveRejected, DriveClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown drive status %q", s)
}

// ParseApplicationStatus converts a raw string to an ApplicationStatus,
// returning an error for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case ApplicationApplied, ApplicationShortlisted, ApplicationSelected,
		ApplicationRejected, ApplicationPlaced:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanApprove returns true when moving a company from → to is permitted.
func CanApprove(from, to ApprovalStatus) bool {
	for _, s := range approvalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanMoveDrive returns true when moving a drive from → to is permitted.
func CanMoveDrive(from, to DriveStatus) bool {
	for _, s := range driveTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanMoveApplication returns true when moving an application from → to is
// permitted by the state machine.
func CanMoveApplication(from, to ApplicationStatus) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
