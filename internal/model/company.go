package model

import "time"

// CompanyProfile is the 1:1 extension of an Account with role COMPANY.
// A company must be approved by an admin before it can publish placement
// drives. Blacklisting is orthogonal to approval: it deactivates the
// owning account and keeps an optional free-text reason while active.
//
// Fields:
//  ID              – primary key identifier.
//  AccountID       – owning account (unique, cascade-deleted with it).
//  CompanyName     – display name of the company.
//  HRContact       – phone/contact line of the HR representative.
//  Website         – optional company website.
//  ApprovalStatus  – PENDING, APPROVED or REJECTED.
//  IsBlacklisted   – punitive deactivation flag set by admins.
//  BlacklistReason – reason retained only while blacklisted.
//  CreatedAt       – timestamp of registration.
//  UpdatedAt       – timestamp of last update.
type CompanyProfile struct {
	ID              uint64    // company_profiles.id
	AccountID       uint64    // company_profiles.account_id
	CompanyName     string    // company_profiles.company_name
	HRContact       string    // company_profiles.hr_contact
	Website         string    // company_profiles.website
	ApprovalStatus  string    // company_profiles.approval_status
	IsBlacklisted   bool      // company_profiles.is_blacklisted
	BlacklistReason *string   // company_profiles.blacklist_reason (nullable)
	CreatedAt       time.Time // company_profiles.created_at
	UpdatedAt       time.Time // company_profiles.updated_at
}
