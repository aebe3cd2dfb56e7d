package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/placement-portal/internal/utils"
)

const testSecret = "middleware-test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, bearer string, inner echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(inner)(c); err != nil {
		t.Fatalf("handler chain returned error: %v", err)
	}
	return rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestJWTAuth_MissingBearer(t *testing.T) {
	rec := doRequest(t, JWTAuth(testSecret), "", okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	rec := doRequest(t, JWTAuth(testSecret), "not-a-jwt", okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "STUDENT", "Alice", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := doRequest(t, JWTAuth(testSecret), at.Token, okHandler)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuth_InjectsSessionTriple(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "COMPANY", "Acme HR", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	var gotID, gotRole, gotName any
	rec := doRequest(t, JWTAuth(testSecret), at.Token, func(c echo.Context) error {
		gotID, gotRole, gotName = c.Get("user_id"), c.Get("role"), c.Get("name")
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if id, _ := gotID.(float64); uint64(id) != 7 {
		t.Errorf("user_id = %v, want 7", gotID)
	}
	if gotRole != "COMPANY" {
		t.Errorf("role = %v, want COMPANY", gotRole)
	}
	if gotName != "Acme HR" {
		t.Errorf("name = %v, want Acme HR", gotName)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	cases := []struct {
		name     string
		allowed  []string
		ctxRole  any
		wantCode int
	}{
		{"matching role passes", []string{"ADMIN"}, "ADMIN", http.StatusOK},
		{"one of several passes", []string{"ADMIN", "COMPANY"}, "COMPANY", http.StatusOK},
		{"wrong role forbidden", []string{"ADMIN"}, "STUDENT", http.StatusForbidden},
		{"missing role forbidden", []string{"ADMIN"}, nil, http.StatusForbidden},
		{"non-string role forbidden", []string{"ADMIN"}, 42, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if tc.ctxRole != nil {
			c.Set("role", tc.ctxRole)
		}
		if err := RequireRole(tc.allowed...)(okHandler)(c); err != nil {
			t.Fatalf("%s: chain returned error: %v", tc.name, err)
		}
		if rec.Code != tc.wantCode {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.wantCode)
		}
	}
}
