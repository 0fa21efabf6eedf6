package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skybound/flightline/internal/auth"
	"skybound/flightline/internal/constants"
)

type stubClaims struct {
	role string
}

func (c *stubClaims) MemberID() string                 { return "member-1" }
func (c *stubClaims) Role() string                     { return c.role }
func (c *stubClaims) Source() string                   { return "API" }
func (c *stubClaims) HasPermission(action string) bool { return true }
func (c *stubClaims) SchoolID() string                 { return "school-1" }

func testDeps() *Dependencies {
	return &Dependencies{
		Repo:     &Repositories{},
		Services: &Services{},
	}
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := auth.SetUserClaims(req.Context(), &stubClaims{role: string(constants.RoleStaff)})
	return req.WithContext(ctx)
}

func TestSetExtensionHandler_InvalidJSON(t *testing.T) {
	handler := SetExtensionHandler(testDeps())

	req := authedRequest(http.MethodPatch, "/api/v1/components/abc/extension", "{not json")
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", rec.Code)
	}
}

func TestSetExtensionHandler_PercentOutOfRange(t *testing.T) {
	handler := SetExtensionHandler(testDeps())

	req := authedRequest(http.MethodPatch, "/api/v1/components/abc/extension", `{"percent": 150}`)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for percent above 100, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), constants.MsgInvalidExtension) {
		t.Errorf("Expected invalid-extension message, got %s", rec.Body.String())
	}
}

func TestLogVisitHandler_MissingClaims(t *testing.T) {
	handler := LogVisitHandler(testDeps())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/visits", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without claims, got %d", rec.Code)
	}
}

func TestLogVisitHandler_InvalidVisitType(t *testing.T) {
	handler := LogVisitHandler(testDeps())

	body := `{
		"aircraft_id": "11111111-1111-4111-8111-111111111111",
		"visit_date": "2025-06-01",
		"visit_type": "Teardown",
		"description": "not a known visit type"
	}`
	req := authedRequest(http.MethodPost, "/api/v1/visits", body)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown visit type, got %d", rec.Code)
	}
}

func TestSharedStatementHandler_MissingToken(t *testing.T) {
	handler := SharedStatementHandler(testDeps())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/shared", nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token or session, got %d", rec.Code)
	}
}
