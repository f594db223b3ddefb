package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/user-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)
	return rec.Code, rec.Body.String()
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrInvalidRefreshToken, http.StatusUnauthorized},
		{domain.ErrMissingRefreshToken, http.StatusBadRequest},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidRole, http.StatusBadRequest},
	}
	for _, tc := range cases {
		code, _ := render(t, tc.err)
		if code != tc.code {
			t.Fatalf("expected %d for %v, got %d", tc.code, tc.err, code)
		}
	}
}

// The response for a failed login must be the same bytes whether the email
// was unknown or the password wrong; both paths surface the same sentinel.
func TestErrorHandler_LoginFailureBody(t *testing.T) {
	codeA, bodyA := render(t, domain.ErrInvalidCredentials)
	codeB, bodyB := render(t, domain.ErrInvalidCredentials)

	if codeA != http.StatusUnauthorized || codeB != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", codeA, codeB)
	}
	if bodyA != bodyB {
		t.Fatalf("bodies differ: %q vs %q", bodyA, bodyB)
	}
	if bodyA != "{\"error\":\"Invalid email or password\"}\n" {
		t.Fatalf("unexpected body: %q", bodyA)
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	code, body := render(t, errors.New("pq: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body != "{\"error\":\"Internal Server Error\"}\n" {
		t.Fatalf("internal detail leaked: %q", body)
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, _ := render(t, echo.NewHTTPError(http.StatusUnauthorized, "Não autorizado"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}
