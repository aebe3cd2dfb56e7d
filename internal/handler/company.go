package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/model"
	"github.com/iliyamo/placement-portal/internal/queue"
	"github.com/iliyamo/placement-portal/internal/repository"
	queue_publisher "github.com/iliyamo/placement-portal/internal/service"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// CompanyHandler covers the recruiter surface: the company's own profile,
// drive CRUD and the per-drive applicant pipeline. Every mutation resolves
// the caller's company profile first and scopes the query by it, so one
// company can never touch another company's drives or applicants.
type CompanyHandler struct {
	Companies    *repository.CompanyRepo
	Drives       *repository.DriveRepo
	Applications *repository.ApplicationRepo
}

func NewCompanyHandler(co *repository.CompanyRepo, dr *repository.DriveRepo, ap *repository.ApplicationRepo) *CompanyHandler {
	return &CompanyHandler{Companies: co, Drives: dr, Applications: ap}
}

// company resolves the caller's company profile and enforces the
// moderation gates shared by every mutation: not blacklisted, and for
// drive publishing, approved.
func (h *CompanyHandler) company(ctx context.Context, c echo.Context) (model.CompanyProfile, error) {
	a, err := getActor(c)
	if err != nil {
		return model.CompanyProfile{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	cp, err := h.Companies.GetByAccountID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return model.CompanyProfile{}, echo.NewHTTPError(http.StatusNotFound, "company profile not found")
		}
		return model.CompanyProfile{}, echo.NewHTTPError(http.StatusInternalServerError, "load profile failed")
	}
	return cp, nil
}

// Profile returns the caller's company profile including moderation state.
func (h *CompanyHandler) Profile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"company": viewCompany(cp)})
}

type updateProfileReq struct {
	CompanyName string `json:"company_name"`
	HRContact   string `json:"hr_contact"`
	Website     string `json:"website"`
}

// UpdateProfile rewrites the editable company fields. Moderation state is
// untouched.
func (h *CompanyHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.CompanyName) == "" || strings.TrimSpace(req.HRContact) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_name/hr_contact required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	if err := h.Companies.UpdateDetails(ctx, cp.ID,
		strings.TrimSpace(req.CompanyName), strings.TrimSpace(req.HRContact), strings.TrimSpace(req.Website)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": cp.ID})
}

type driveReq struct {
	JobTitle            string `json:"job_title"`
	JobDescription      string `json:"job_description"`
	EligibilityCriteria string `json:"eligibility_criteria"`
	RequiredSkills      string `json:"required_skills"`
	ExperienceYears     int    `json:"experience_years"`
	SalaryRange         string `json:"salary_range"`
	Deadline            string `json:"application_deadline"` // YYYY-MM-DD
}

func (r driveReq) validate() (time.Time, error) {
	if strings.TrimSpace(r.JobTitle) == "" || strings.TrimSpace(r.JobDescription) == "" {
		return time.Time{}, errors.New("job_title/job_description required")
	}
	if r.ExperienceYears < 0 {
		return time.Time{}, errors.New("experience_years must not be negative")
	}
	deadline, err := time.Parse("2006-01-02", strings.TrimSpace(r.Deadline))
	if err != nil {
		return time.Time{}, errors.New("application_deadline must be YYYY-MM-DD")
	}
	return deadline, nil
}

// CreateDrive inserts a new drive at PENDING. Only an approved,
// non-blacklisted company may post; the drive still needs its own admin
// approval before students see it.
func (h *CompanyHandler) CreateDrive(c echo.Context) error {
	var req driveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	deadline, err := req.validate()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	if cp.IsBlacklisted || cp.ApprovalStatus != string(workflow.ApprovalApproved) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "company is not approved to post drives"})
	}

	d := &model.PlacementDrive{
		CompanyID:           cp.ID,
		JobTitle:            strings.TrimSpace(req.JobTitle),
		JobDescription:      req.JobDescription,
		EligibilityCriteria: req.EligibilityCriteria,
		RequiredSkills:      req.RequiredSkills,
		ExperienceYears:     req.ExperienceYears,
		SalaryRange:         req.SalaryRange,
		Deadline:            deadline,
	}
	if err := h.Drives.Create(ctx, d); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create drive failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": d.ID, "status": d.Status})
}

// ListDrives returns all drives owned by the caller, any status.
func (h *CompanyHandler) ListDrives(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	out, err := h.Drives.ListByCompany(ctx, cp.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"drives": viewDrives(out)})
}

// GetDrive returns one owned drive. Foreign drives read as 404.
func (h *CompanyHandler) GetDrive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	d, err := h.Drives.GetByIDAndCompany(ctx, id, cp.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"drive": viewDrive(d)})
}

// UpdateDrive rewrites the editable fields of an owned drive.
func (h *CompanyHandler) UpdateDrive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req driveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	deadline, err := req.validate()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	d := &model.PlacementDrive{
		ID:                  id,
		CompanyID:           cp.ID,
		JobTitle:            strings.TrimSpace(req.JobTitle),
		JobDescription:      req.JobDescription,
		EligibilityCriteria: req.EligibilityCriteria,
		RequiredSkills:      req.RequiredSkills,
		ExperienceYears:     req.ExperienceYears,
		SalaryRange:         req.SalaryRange,
		Deadline:            deadline,
	}
	if err := h.Drives.UpdateDetails(ctx, d); err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// CloseDrive moves an owned drive from APPROVED to CLOSED, ending its
// visibility immediately regardless of deadline.
func (h *CompanyHandler) CloseDrive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	d, err := h.Drives.GetByIDAndCompany(ctx, id, cp.ID)
	if err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	if !workflow.CanMoveDrive(workflow.DriveStatus(d.Status), workflow.DriveClosed) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "cannot close a " + d.Status + " drive"})
	}
	if err := h.Drives.SetStatus(ctx, id, string(workflow.DriveClosed)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": workflow.DriveClosed})
}

// DeleteDrive removes an owned drive; applications go with it via the
// cascading foreign key.
func (h *CompanyHandler) DeleteDrive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	if err := h.Drives.Delete(ctx, id, cp.ID); err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListApplications returns the applicant rows for one owned drive.
func (h *CompanyHandler) ListApplications(c echo.Context) error {
	driveID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	if _, err := h.Drives.GetByIDAndCompany(ctx, driveID, cp.ID); err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	out, err := h.Applications.ListByDrive(ctx, driveID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": out})
}

type applicationStatusReq struct {
	Status string `json:"status"`
}

// statusMessage renders the notification text for a status change.
func statusMessage(jobTitle string, status workflow.ApplicationStatus) string {
	return fmt.Sprintf("Your application for %q is now %s.", jobTitle, status)
}

// SetApplicationStatus moves an application through the pipeline. The
// target status is parsed against the closed set, the transition is
// checked against the table, and the status write commits together with
// exactly one notification row for the student in one transaction. A
// status-changed event is additionally published for the audit consumer;
// publish failures are logged inside the publisher and never fail the
// request.
func (h *CompanyHandler) SetApplicationStatus(c echo.Context) error {
	appID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req applicationStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, err := workflow.ParseApplicationStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cp, err := h.company(ctx, c)
	if err != nil {
		return err
	}
	app, err := h.Applications.GetByIDForCompany(ctx, appID, cp.ID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	if !workflow.CanMoveApplication(workflow.ApplicationStatus(app.Status), target) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "cannot move application from " + app.Status + " to " + string(target),
		})
	}

	drive, err := h.Drives.GetByID(ctx, app.DriveID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load drive failed"})
	}
	if err := h.Applications.SetStatusAndNotify(ctx, appID, string(target),
		app.StudentID, statusMessage(drive.JobTitle, target)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	event := queue.ApplicationStatusChangedEvent{
		ApplicationID: app.ID,
		StudentID:     app.StudentID,
		DriveID:       drive.ID,
		DriveTitle:    drive.JobTitle,
		CompanyName:   cp.CompanyName,
		OldStatus:     app.Status,
		NewStatus:     string(target),
		Message:       statusMessage(drive.JobTitle, target),
		ChangedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	_ = queue_publisher.PublishApplicationStatusChanged(c.Request().Context(), event)

	return c.JSON(http.StatusOK, echo.Map{"id": appID, "status": target})
}
