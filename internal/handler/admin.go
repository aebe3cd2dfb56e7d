package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/repository"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// AdminHandler covers the moderation surface: dashboard counts, company
// and student directories, company/drive approval and the blacklist
// toggles. Every route behind it is gated by RequireRole(ADMIN), so the
// handlers themselves only validate the transition being asked for.
type AdminHandler struct {
	Accounts     *repository.AccountRepo
	Companies    *repository.CompanyRepo
	Students     *repository.StudentRepo
	Drives       *repository.DriveRepo
	Applications *repository.ApplicationRepo
	Tokens       *repository.TokenRepo
}

func NewAdminHandler(a *repository.AccountRepo, co *repository.CompanyRepo, st *repository.StudentRepo, dr *repository.DriveRepo, ap *repository.ApplicationRepo, t *repository.TokenRepo) *AdminHandler {
	return &AdminHandler{Accounts: a, Companies: co, Students: st, Drives: dr, Applications: ap, Tokens: t}
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	companies, err := h.Companies.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
	}
	students, err := h.Accounts.CountByRole(ctx, workflow.RoleStudent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
	}
	drives, err := h.Drives.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
	}
	applications, err := h.Applications.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"companies":    companies,
		"students":     students,
		"drives":       drives,
		"applications": applications,
	})
}

// ListCompanies returns all company profiles, filterable with ?search= on
// the company name.
func (h *AdminHandler) ListCompanies(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Companies.List(ctx, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"companies": viewCompanies(out)})
}

// ListStudents returns all student accounts joined with their profiles,
// filterable with ?search= on name, email or id.
func (h *AdminHandler) ListStudents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Students.ListDirectory(ctx, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"students": out})
}

// ListDrives returns every drive regardless of status or owner.
func (h *AdminHandler) ListDrives(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Drives.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"drives": viewDrives(out)})
}

// ListApplications returns every application row.
func (h *AdminHandler) ListApplications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Applications.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": viewApplications(out)})
}

type approvalReq struct {
	Status string `json:"status"`
}

// SetCompanyApproval moves a company out of PENDING to APPROVED or
// REJECTED. Unknown statuses are a 400, disallowed transitions a 409.
func (h *AdminHandler) SetCompanyApproval(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req approvalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, err := workflow.ParseApprovalStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	company, err := h.Companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	if !workflow.CanApprove(workflow.ApprovalStatus(company.ApprovalStatus), target) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "cannot move company from " + company.ApprovalStatus + " to " + string(target),
		})
	}
	if err := h.Companies.SetApprovalStatus(ctx, id, string(target)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "approval_status": target})
}

type blacklistReq struct {
	Blacklisted bool   `json:"blacklisted"`
	Reason      string `json:"reason"`
}

// SetCompanyBlacklist toggles the company blacklist flag. Blacklisting
// also deactivates the company's account and revokes its refresh tokens,
// so existing credentials stop working and stale sessions cannot be
// extended; unblacklisting never reactivates the account, that needs an
// explicit ActivateAccount call.
func (h *AdminHandler) SetCompanyBlacklist(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req blacklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	company, err := h.Companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	if err := h.Companies.SetBlacklist(ctx, id, req.Blacklisted, req.Reason); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if req.Blacklisted {
		if err := h.Accounts.SetActive(ctx, company.AccountID, false); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
		}
		if err := h.Tokens.RevokeAllForAccount(ctx, company.AccountID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_blacklisted": req.Blacklisted})
}

// SetStudentBlacklist toggles the student blacklist flag, identified by
// account id. Blacklisting deactivates the account and revokes its
// refresh tokens as well.
func (h *AdminHandler) SetStudentBlacklist(c echo.Context) error {
	accountID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req blacklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Students.SetBlacklist(ctx, accountID, req.Blacklisted); err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if req.Blacklisted {
		if err := h.Accounts.SetActive(ctx, accountID, false); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "deactivate failed"})
		}
		if err := h.Tokens.RevokeAllForAccount(ctx, accountID); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"account_id": accountID, "is_blacklisted": req.Blacklisted})
}

// ActivateAccount re-enables a deactivated account. This is the only path
// back after a blacklist deactivation.
func (h *AdminHandler) ActivateAccount(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accounts.SetActive(ctx, id, true); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "account not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "is_active": true})
}

type driveStatusReq struct {
	Status string `json:"status"`
}

// SetDriveStatus moves a drive to APPROVED or REJECTED. The transition
// table rejects re-approving a closed or rejected drive with 409.
func (h *AdminHandler) SetDriveStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req driveStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, err := workflow.ParseDriveStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if target != workflow.DriveApproved && target != workflow.DriveRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "admin can only set APPROVED or REJECTED"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	drive, err := h.Drives.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load failed"})
	}
	if !workflow.CanMoveDrive(workflow.DriveStatus(drive.Status), target) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "cannot move drive from " + drive.Status + " to " + string(target),
		})
	}
	if err := h.Drives.SetStatus(ctx, id, string(target)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": target})
}
