package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/config"
	"github.com/iliyamo/placement-portal/internal/model"
	"github.com/iliyamo/placement-portal/internal/repository"
	"github.com/iliyamo/placement-portal/internal/utils"
	"github.com/iliyamo/placement-portal/internal/workflow"
)

// AuthHandler bundles dependencies for registration, login and the token
// lifecycle. Login is the enforcement point for account deactivation: a
// blacklisted company or student fails here with correct credentials, and
// action-time checks in the role handlers cover sessions issued before the
// blacklisting.
type AuthHandler struct {
	Cfg       config.Config
	Accounts  *repository.AccountRepo
	Companies *repository.CompanyRepo
	Students  *repository.StudentRepo
	Tokens    *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, a *repository.AccountRepo, co *repository.CompanyRepo, st *repository.StudentRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: a, Companies: co, Students: st, Tokens: t}
}

// ----- DTOs -----

type studentRegisterReq struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Qualification string `json:"qualification"`
	Skills        string `json:"skills"`
}

type companyRegisterReq struct {
	CompanyName string `json:"company_name"`
	HRName      string `json:"hr_name"`
	HRContact   string `json:"hr_contact"`
	Website     string `json:"website"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func (h *AuthHandler) issuePair(ctx context.Context, id uint64, role, name string) (tokenPart, tokenPart, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, id, role, name, h.Cfg.AccessTTLMin)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, id, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return tokenPart{}, tokenPart{}, err
	}
	return tokenPart{Token: access.Token, Expires: access.Exp},
		tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, nil
}

// RegisterStudent creates a STUDENT account plus its profile and returns
// tokens immediately so the student can apply right after registering.
func (h *AuthHandler) RegisterStudent(c echo.Context) error {
	var req studentRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" || strings.TrimSpace(req.Qualification) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password/qualification required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Accounts.Create(ctx, req.Name, req.Email, req.Password, workflow.RoleStudent, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}
	profile := &model.StudentProfile{
		AccountID:     uid,
		Qualification: strings.TrimSpace(req.Qualification),
		Skills:        strings.TrimSpace(req.Skills),
	}
	if err := h.Students.Create(ctx, profile); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	access, refresh, err := h.issuePair(ctx, uid, workflow.RoleStudent, req.Name)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: uid, Name: req.Name, Email: req.Email, Role: workflow.RoleStudent},
		Access:  access,
		Refresh: refresh,
	})
}

// RegisterCompany creates a COMPANY account plus its profile. The company
// starts at approval status PENDING and cannot publish drives until an
// admin approves it, so no tokens shortcut that gate — they are still
// issued, the drive endpoints enforce the approval check.
func (h *AuthHandler) RegisterCompany(c echo.Context) error {
	var req companyRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.HRName = strings.TrimSpace(req.HRName)
	if req.CompanyName == "" || req.HRName == "" || strings.TrimSpace(req.HRContact) == "" ||
		req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_name/hr_name/hr_contact/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Accounts.Create(ctx, req.HRName, req.Email, req.Password, workflow.RoleCompany, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create account failed"})
	}
	profile := &model.CompanyProfile{
		AccountID:   uid,
		CompanyName: req.CompanyName,
		HRContact:   strings.TrimSpace(req.HRContact),
		Website:     strings.TrimSpace(req.Website),
	}
	if err := h.Companies.Create(ctx, profile); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create profile failed"})
	}

	access, refresh, err := h.issuePair(ctx, uid, workflow.RoleCompany, req.HRName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		User:    userPart{ID: uid, Name: req.HRName, Email: req.Email, Role: workflow.RoleCompany},
		Access:  access,
		Refresh: refresh,
	})
}

// Login verifies credentials and returns a fresh token pair. Deactivated
// accounts are rejected before the password is even checked, and a
// blacklisted company is rejected here as well so blacklisting cuts off
// login entirely rather than merely restricting what a session can do.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if u.Role == workflow.RoleCompany {
		if cp, err := h.Companies.GetByAccountID(ctx, u.ID); err == nil && cp.IsBlacklisted {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
		}
	}

	access, refresh, err := h.issuePair(ctx, u.ID, u.Role, u.FullName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Name: u.FullName, Email: u.Email, Role: u.Role},
		Access:  access,
		Refresh: refresh,
	})
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation). The account must still be active.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accountID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}

	access, refresh, err := h.issuePair(ctx, u.ID, u.Role, u.FullName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:    userPart{ID: u.ID, Name: u.FullName, Email: u.Email, Role: u.Role},
		Access:  access,
		Refresh: refresh,
	})
}

// RefreshAccess issues a new access token from a valid refresh token
// without rotating it. Lighter than Refresh for clients that only need to
// extend the access window.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	accountID, err := h.Tokens.ValidateRefresh(ctx, utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken)))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	u, err := h.Accounts.GetByID(ctx, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load account failed"})
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "account disabled"})
	}
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, u.FullName, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access": tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Logout revokes a session. With a refresh token in the body only that
// session dies; an authenticated call without one revokes every token of
// the current account.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	refreshToken := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if refreshToken != "" {
		hash := utils.HashRefreshRaw(refreshToken)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}

	a, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "provide refresh_token or an access token"})
	}
	if err := h.Tokens.RevokeAllForAccount(ctx, a.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the session triple of the authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	a, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": a.ID,
		"role":    a.Role,
		"name":    a.Name,
	})
}
