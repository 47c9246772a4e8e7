package errors

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
)

func TestClassifyHTTPStatus(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   ErrorCategory
	}{
		{400, Irrecoverable}, {401, Irrecoverable}, {404, Irrecoverable},
		{408, Recoverable}, {429, Recoverable},
		{500, Recoverable}, {503, Recoverable},
		{302, Recoverable},
	}
	for _, c := range cases {
		if got := ClassifyHTTPStatus(c.status); got != c.want {
			t.Fatalf("status %d: got %s want %s", c.status, got, c.want)
		}
	}
}

func TestNewHTTPError(t *testing.T) {
	t.Parallel()
	err := NewHTTPError("GET", "https://api.example.com/anime/1", 404, `{"error":"nope"}`)
	if err.StatusCode != 404 || err.Category != Irrecoverable {
		t.Fatalf("unexpected error: %+v", err)
	}
	if !IsIrrecoverable(err) {
		t.Fatalf("404 should be irrecoverable")
	}
	if !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("message missing status: %s", err.Error())
	}
}

func TestNewNetworkErrorUnwraps(t *testing.T) {
	t.Parallel()
	err := NewNetworkError("GET", "https://api.example.com", context.DeadlineExceeded)
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped deadline error")
	}
	if IsIrrecoverable(err) {
		t.Fatalf("network errors are recoverable")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()
	err := &ValidationError{Param: "name", Template: "/users/{id}"}
	if !strings.Contains(err.Error(), `"name"`) {
		t.Fatalf("message should name the parameter: %s", err.Error())
	}
	err = &ValidationError{Param: "{x}", Template: "/a", Reason: "contains braces"}
	if !strings.Contains(err.Error(), "contains braces") {
		t.Fatalf("message should carry reason: %s", err.Error())
	}
}

func TestCategoryString(t *testing.T) {
	t.Parallel()
	if Recoverable.String() != "Recoverable" || Irrecoverable.String() != "Irrecoverable" {
		t.Fatalf("unexpected category names")
	}
	if ErrorCategory(7).String() != "Unknown(7)" {
		t.Fatalf("unexpected unknown category name")
	}
}
