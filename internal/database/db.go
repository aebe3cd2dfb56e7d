package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema contains the full table layout executed at startup. Every foreign
// key cascades on delete: profiles die with their account, drives with
// their company, applications with either side, notifications with the
// student. The unique key on (student_id, drive_id) makes the storage
// engine reject a duplicate concurrent apply.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		full_name VARCHAR(100) NOT NULL,
		email VARCHAR(120) NOT NULL,
		password_hash VARCHAR(200) NOT NULL,
		role VARCHAR(20) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_accounts_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		account_id BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64) NOT NULL,
		expires_at DATETIME NOT NULL,
		revoked_at DATETIME NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_account FOREIGN KEY (account_id)
			REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS company_profiles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		account_id BIGINT UNSIGNED NOT NULL,
		company_name VARCHAR(150) NOT NULL,
		hr_contact VARCHAR(100) NOT NULL,
		website VARCHAR(150) NOT NULL DEFAULT '',
		approval_status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		is_blacklisted TINYINT(1) NOT NULL DEFAULT 0,
		blacklist_reason VARCHAR(255) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_company_profiles_account (account_id),
		CONSTRAINT fk_company_profiles_account FOREIGN KEY (account_id)
			REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS student_profiles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		account_id BIGINT UNSIGNED NOT NULL,
		qualification VARCHAR(100) NOT NULL,
		skills VARCHAR(250) NOT NULL DEFAULT '',
		resume_path VARCHAR(250) NOT NULL DEFAULT '',
		is_blacklisted TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_student_profiles_account (account_id),
		CONSTRAINT fk_student_profiles_account FOREIGN KEY (account_id)
			REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS placement_drives (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		company_id BIGINT UNSIGNED NOT NULL,
		job_title VARCHAR(150) NOT NULL,
		job_description TEXT NOT NULL,
		eligibility_criteria TEXT NULL,
		required_skills VARCHAR(250) NOT NULL DEFAULT '',
		experience_years INT NOT NULL DEFAULT 0,
		salary_range VARCHAR(100) NOT NULL DEFAULT '',
		application_deadline DATE NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_placement_drives_deadline (status, application_deadline),
		CONSTRAINT fk_placement_drives_company FOREIGN KEY (company_id)
			REFERENCES company_profiles (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS applications (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		student_id BIGINT UNSIGNED NOT NULL,
		drive_id BIGINT UNSIGNED NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'APPLIED',
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_applications_student_drive (student_id, drive_id),
		CONSTRAINT fk_applications_student FOREIGN KEY (student_id)
			REFERENCES accounts (id) ON DELETE CASCADE,
		CONSTRAINT fk_applications_drive FOREIGN KEY (drive_id)
			REFERENCES placement_drives (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		student_id BIGINT UNSIGNED NOT NULL,
		message VARCHAR(500) NOT NULL,
		is_read TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_notifications_student (student_id, is_read),
		CONSTRAINT fk_notifications_student FOREIGN KEY (student_id)
			REFERENCES accounts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates all tables if they do not exist yet. Statements run
// in dependency order so foreign keys resolve.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
