package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/blob"
	"github.com/iliyamo/placement-portal/internal/repository"
)

var (
	companyColumns = []string{"id", "account_id", "company_name", "hr_contact", "website",
		"approval_status", "is_blacklisted", "blacklist_reason", "created_at", "updated_at"}
	studentColumns = []string{"id", "account_id", "qualification", "skills", "resume_path",
		"is_blacklisted", "created_at", "updated_at"}
	driveColumns = []string{"id", "company_id", "job_title", "job_description",
		"eligibility_criteria", "required_skills", "experience_years", "salary_range",
		"application_deadline", "status", "created_at", "updated_at"}
	applicationColumns = []string{"id", "student_id", "drive_id", "status", "applied_at"}
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func jsonRequest(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// Blacklisting a company must flip the owning account inactive and revoke
// its refresh tokens in the same operation.
func TestBlacklistCompanyDeactivatesAccount(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("SELECT .+ FROM company_profiles WHERE id=").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(companyColumns).
			AddRow(5, 9, "Acme", "123456", "", "APPROVED", false, nil, now, now))
	mock.ExpectExec("UPDATE company_profiles SET is_blacklisted=").
		WithArgs(true, "fraud", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE accounts SET is_active=").
		WithArgs(false, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 2))

	h := NewAdminHandler(
		repository.NewAccountRepo(db), repository.NewCompanyRepo(db),
		repository.NewStudentRepo(db), repository.NewDriveRepo(db),
		repository.NewApplicationRepo(db), repository.NewTokenRepo(db))

	c, rec := jsonRequest(t, http.MethodPost, `{"blacklisted":true,"reason":"fraud"}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := h.SetCompanyBlacklist(c); err != nil {
		t.Fatalf("SetCompanyBlacklist: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("blacklist did not deactivate the account in the same operation: %v", err)
	}
}

// A second apply for the same (student, drive) pair surfaces as 409 via
// the unique key; no second row is written.
func TestApplyTwiceConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	deadline := now.AddDate(0, 0, 7)

	mock.ExpectQuery("FROM student_profiles WHERE account_id=").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(studentColumns).
			AddRow(1, 7, "BSc", "go,sql", "", false, now, now))
	mock.ExpectQuery("FROM placement_drives WHERE id=").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(3, 5, "Backend Intern", "Go services", "", "go", 0, "", deadline, "APPROVED", now, now))
	mock.ExpectQuery("FROM company_profiles WHERE id=").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(companyColumns).
			AddRow(5, 9, "Acme", "123456", "", "APPROVED", false, nil, now, now))
	mock.ExpectExec("INSERT INTO applications").
		WithArgs(7, 3).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '7-3' for key 'uq_applications_student_drive'"))

	resumes, err := blob.New(t.TempDir())
	if err != nil {
		t.Fatalf("blob.New: %v", err)
	}
	h := NewStudentHandler(
		repository.NewAccountRepo(db), repository.NewStudentRepo(db),
		repository.NewCompanyRepo(db), repository.NewDriveRepo(db),
		repository.NewApplicationRepo(db), repository.NewNotificationRepo(db), resumes)

	c, rec := jsonRequest(t, http.MethodPost, "")
	c.Set("user_id", float64(7))
	c.Set("role", "STUDENT")
	c.Set("name", "Alice")
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Apply(c); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "already applied") {
		t.Errorf("body %q does not report the duplicate", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

// A status change commits the status write and exactly one unread
// notification mentioning the job title and the new status, in one
// transaction.
func TestStatusChangeWritesSingleNotification(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery("FROM company_profiles WHERE account_id=").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(companyColumns).
			AddRow(5, 9, "Acme", "123456", "", "APPROVED", false, nil, now, now))
	mock.ExpectQuery("FROM applications a").
		WithArgs(11, 5).
		WillReturnRows(sqlmock.NewRows(applicationColumns).
			AddRow(11, 7, 3, "APPLIED", now))
	mock.ExpectQuery("FROM placement_drives WHERE id=").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(driveColumns).
			AddRow(3, 5, "Backend Intern", "Go services", "", "go", 0, "", now.AddDate(0, 0, 7), "APPROVED", now, now))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE applications SET status=").
		WithArgs("SELECTED", 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(7, `Your application for "Backend Intern" is now SELECTED.`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	h := NewCompanyHandler(
		repository.NewCompanyRepo(db), repository.NewDriveRepo(db),
		repository.NewApplicationRepo(db))

	c, rec := jsonRequest(t, http.MethodPost, `{"status":"SELECTED"}`)
	c.Set("user_id", float64(9))
	c.Set("role", "COMPANY")
	c.Set("name", "Acme HR")
	c.SetParamNames("id")
	c.SetParamValues("11")

	if err := h.SetApplicationStatus(c); err != nil {
		t.Fatalf("SetApplicationStatus: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("status write and notification did not commit together: %v", err)
	}
}
