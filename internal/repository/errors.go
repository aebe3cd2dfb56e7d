// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios: not-found
// lookups become 404 responses and conflicting writes (duplicate email,
// duplicate application) become 409. Ownership violations surface as the
// per-entity not-found errors because owner-scoped queries simply return
// no row for foreign resources.
package repository

import "errors"

// ErrEmailExists is returned by AccountRepo.Create when the email is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateApplication is returned by ApplicationRepo.Create when
// the (student, drive) pair already has an application row. The unique
// key enforces this even under concurrent inserts.
var ErrDuplicateApplication = errors.New("application already exists")

// Per-entity not-found sentinels.
var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrCompanyNotFound     = errors.New("company not found")
	ErrStudentNotFound     = errors.New("student profile not found")
	ErrDriveNotFound       = errors.New("drive not found")
	ErrApplicationNotFound = errors.New("application not found")
)
