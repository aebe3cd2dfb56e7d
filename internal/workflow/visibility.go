package workflow

import "time"

// DriveOpen reports whether a drive currently accepts applications:
// the drive is APPROVED, its deadline has not passed, and the owning
// company is APPROVED and not blacklisted. The deadline is a date, so the
// comparison is done on calendar days in the deadline's location.
//
// The SQL in the drive search applies the same filter; this predicate is
// the authoritative re-check executed before an application row is
// inserted, so a student cannot apply to a drive that fell out of the
// listing between browse and apply.
func DriveOpen(drive DriveStatus, deadline time.Time, company ApprovalStatus, companyBlacklisted bool, now time.Time) bool {
	if drive != DriveApproved {
		return false
	}
	if company != ApprovalApproved || companyBlacklisted {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return !deadline.Before(today)
}
