package weberror

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/tasktrack/internal/platform/errors"
	"github.com/louisbranch/tasktrack/internal/services/web/i18n"
)

func TestWriteModuleErrorRendersNotFoundPageWithCatalogMessage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/projects/missing", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.EK(apperrors.KindNotFound, "project.not_found", "project p1 missing"), "alice")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
	body := rr.Body.String()
	for _, marker := range []string{`id="error-root"`, "Project not found", "Signed in as alice"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q: %q", marker, body)
		}
	}
	if strings.Contains(body, "p1 missing") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorRendersServerPageForStorageFailure(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, errors.New("list projects: database is locked"), "")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "An error occurred. Please try again.") {
		t.Fatalf("body missing generic message: %q", body)
	}
	if strings.Contains(body, "database is locked") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
}

func TestWriteModuleErrorWritesPlainTextForBadRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rr := httptest.NewRecorder()
	WriteModuleError(rr, req, apperrors.E(apperrors.KindInvalidInput, "bad form"), "")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	body := rr.Body.String()
	if strings.Contains(body, "bad form") {
		t.Fatalf("body leaked internal error text: %q", body)
	}
	if !strings.Contains(body, "An error occurred. Please try again.") {
		t.Fatalf("body = %q, want generic message", body)
	}
}

func TestPublicMessage(t *testing.T) {
	t.Parallel()

	loc := i18n.Printer(i18n.Default())
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "keyed", err: apperrors.EK(apperrors.KindInvalidInput, "task.fields_required", "x"), want: "Title and project are required"},
		{name: "untyped", err: errors.New("disk full"), want: "An error occurred. Please try again."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PublicMessage(loc, tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestShouldRenderErrorPage(t *testing.T) {
	t.Parallel()

	for status, want := range map[int]bool{
		http.StatusNotFound:            true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusBadRequest:          false,
		http.StatusConflict:            false,
	} {
		if got := ShouldRenderErrorPage(status); got != want {
			t.Fatalf("ShouldRenderErrorPage(%d) = %v, want %v", status, got, want)
		}
	}
}
