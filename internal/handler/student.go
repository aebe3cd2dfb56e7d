package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/blob"
	"github.com/iliyamo/placement-portal/internal/model"
	"github.com/iliyamo/placement-portal/internal/repository"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// maxResumeBytes caps resume uploads at 5 MiB.
const maxResumeBytes = 5 << 20

// StudentHandler covers the applicant surface: browsing open drives,
// applying, history, the student's own profile with resume upload, and
// the notification mailbox.
type StudentHandler struct {
	Accounts      *repository.AccountRepo
	Students      *repository.StudentRepo
	Companies     *repository.CompanyRepo
	Drives        *repository.DriveRepo
	Applications  *repository.ApplicationRepo
	Notifications *repository.NotificationRepo
	Resumes       *blob.Store
}

func NewStudentHandler(a *repository.AccountRepo, st *repository.StudentRepo, co *repository.CompanyRepo, dr *repository.DriveRepo, ap *repository.ApplicationRepo, no *repository.NotificationRepo, resumes *blob.Store) *StudentHandler {
	return &StudentHandler{Accounts: a, Students: st, Companies: co, Drives: dr, Applications: ap, Notifications: no, Resumes: resumes}
}

func (h *StudentHandler) student(ctx context.Context, c echo.Context) (actor, model.StudentProfile, error) {
	a, err := getActor(c)
	if err != nil {
		return actor{}, model.StudentProfile{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	sp, err := h.Students.GetByAccountID(ctx, a.ID)
	if err != nil {
		if errors.Is(err, repository.ErrStudentNotFound) {
			return a, model.StudentProfile{}, echo.NewHTTPError(http.StatusNotFound, "student profile not found")
		}
		return a, model.StudentProfile{}, echo.NewHTTPError(http.StatusInternalServerError, "load profile failed")
	}
	return a, sp, nil
}

// BrowseDrives lists the drives currently accepting applications,
// filterable with ?search= and paginated with ?page= and ?page_size=.
func (h *StudentHandler) BrowseDrives(c echo.Context) error {
	q := repository.DriveSearchQuery{
		Search:   c.QueryParam("search"),
		Page:     1,
		PageSize: 20,
	}
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		q.Page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && ps > 0 && ps <= 100 {
		q.PageSize = ps
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	drives, total, err := h.Drives.SearchOpen(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"drives":    drives,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// Apply creates an application for the caller on one drive. The openness
// of the drive is re-checked here against live data, so a drive that was
// closed, rejected or expired after the student browsed it is refused even
// though it appeared in the listing. A blacklisted student cannot apply,
// and the unique key turns a repeat apply into a 409.
func (h *StudentHandler) Apply(c echo.Context) error {
	driveID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, sp, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	if sp.IsBlacklisted {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "account is blacklisted"})
	}

	drive, err := h.Drives.GetByID(ctx, driveID)
	if err != nil {
		if errors.Is(err, repository.ErrDriveNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "drive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load drive failed"})
	}
	company, err := h.Companies.GetByID(ctx, drive.CompanyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load company failed"})
	}
	if !workflow.DriveOpen(
		workflow.DriveStatus(drive.Status), drive.Deadline,
		workflow.ApprovalStatus(company.ApprovalStatus), company.IsBlacklisted,
		time.Now()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "drive is not accepting applications"})
	}

	id, err := h.Applications.Create(ctx, a.ID, driveID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already applied to this drive"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "apply failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": workflow.ApplicationApplied})
}

// History returns the caller's applications, newest first.
func (h *StudentHandler) History(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, _, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	out, err := h.Applications.ListByStudent(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": out})
}

// Profile returns the caller's profile plus account identity.
func (h *StudentHandler) Profile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, sp, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	acc, err := h.Accounts.GetByID(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"account_id":    acc.ID,
		"name":          acc.FullName,
		"email":         acc.Email,
		"qualification": sp.Qualification,
		"skills":        sp.Skills,
		"has_resume":    sp.ResumePath != "",
	})
}

type studentProfileReq struct {
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Skills        string `json:"skills"`
}

// UpdateProfile changes the editable profile fields and, when provided,
// the account display name.
func (h *StudentHandler) UpdateProfile(c echo.Context) error {
	var req studentProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Qualification) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "qualification required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, _, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	if err := h.Students.UpdateDetails(ctx, a.ID,
		strings.TrimSpace(req.Qualification), strings.TrimSpace(req.Skills)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		if err := h.Accounts.UpdateFullName(ctx, a.ID, name); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update name failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"account_id": a.ID})
}

// UploadResume stores the multipart "resume" file in the blob store and
// records the returned reference. Re-uploading replaces the reference; the
// previous blob stays on disk.
func (h *StudentHandler) UploadResume(c echo.Context) error {
	fh, err := c.FormFile("resume")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field 'resume' required"})
	}
	if fh.Size > maxResumeBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "resume exceeds 5 MiB"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "read upload failed"})
	}
	defer src.Close()
	data, err := io.ReadAll(io.LimitReader(src, maxResumeBytes+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "read upload failed"})
	}
	if len(data) > maxResumeBytes {
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "resume exceeds 5 MiB"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, _, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	ref, err := h.Resumes.Save(data, fh.Filename)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store resume failed"})
	}
	if err := h.Students.SetResumePath(ctx, a.ID, ref); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save reference failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"resume": ref})
}

// DownloadResume streams the caller's own stored resume.
func (h *StudentHandler) DownloadResume(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_, sp, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	if sp.ResumePath == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no resume uploaded"})
	}
	path, err := h.Resumes.Open(sp.ResumePath)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "resume file missing"})
	}
	return c.Attachment(path, blob.SanitizeName(sp.ResumePath))
}

// ListNotifications returns the caller's mailbox plus the unread counter.
func (h *StudentHandler) ListNotifications(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, _, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	items, err := h.Notifications.ListByStudent(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	unread, err := h.Notifications.CountUnread(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": viewNotifications(items), "unread": unread})
}

// MarkNotificationsRead flags the whole mailbox as read.
func (h *StudentHandler) MarkNotificationsRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, _, err := h.student(ctx, c)
	if err != nil {
		return err
	}
	if err := h.Notifications.MarkAllRead(ctx, a.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
