package model

import "time"

// Account represents an identity record in the `accounts` table.
// Every actor in the portal (admin, company HR contact, student) owns
// exactly one account with exactly one role. The json tags are omitted
// because these structs are used by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the account.
//  FullName     – display name shown in the UI and embedded in tokens.
//  Email        – unique, lower-cased email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – one of ADMIN, COMPANY or STUDENT.
//  IsActive     – whether the account may authenticate. Blacklisting a
//                 company or student flips this to false.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Account struct {
	ID           uint64    // accounts.id
	FullName     string    // accounts.full_name
	Email        string    // accounts.email
	PasswordHash string    // accounts.password_hash
	Role         string    // accounts.role
	IsActive     bool      // accounts.is_active
	CreatedAt    time.Time // accounts.created_at
	UpdatedAt    time.Time // accounts.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to an account and carries expiry and revocation
// metadata. Only the SHA-256 hash of the raw token is stored.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	AccountID uint64     // refresh_tokens.account_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
