package apperr

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestConstructors_StatusAndCode(t *testing.T) {
	cases := []struct {
		name   string
		err    *AppError
		status int
		code   string
	}{
		{"bad_request", BadRequest("nope"), http.StatusBadRequest, CodeBadRequest},
		{"unauthorized", Unauthorized("nope"), http.StatusUnauthorized, CodeUnauthorized},
		{"forbidden", Forbidden("nope"), http.StatusForbidden, CodeForbidden},
		{"not_found_resource", NotFound("Resource not found"), http.StatusNotFound, CodeResourceMissed},
		{"not_found_route", NotFound("Can't find GET /api/xyz on this server"), http.StatusNotFound, CodeRouteNotFound},
		{"conflict", Conflict("nope"), http.StatusConflict, CodeConflict},
		{"method", MethodNotAllowed("nope"), http.StatusMethodNotAllowed, CodeMethodNotAllow},
		{"rate", RateLimited("nope"), http.StatusTooManyRequests, CodeRateLimited},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Status != tc.status {
				t.Fatalf("status=%d want %d", tc.err.Status, tc.status)
			}
			if tc.err.Code != tc.code {
				t.Fatalf("code=%q want %q", tc.err.Code, tc.code)
			}
			if !tc.err.Operational {
				t.Fatalf("expected operational")
			}
		})
	}
}

func TestInternal_NonOperationalWithStack(t *testing.T) {
	cause := errors.New("db exploded")
	e := Internal(cause)

	if e.Operational {
		t.Fatalf("internal errors must not be operational")
	}
	if e.Status != http.StatusInternalServerError {
		t.Fatalf("status=%d", e.Status)
	}
	if len(e.Stack()) == 0 {
		t.Fatalf("expected captured stack")
	}
	if !errors.Is(e, cause) {
		t.Fatalf("cause should unwrap")
	}
}

func TestUnprocessableEntity_JoinsFieldMessages(t *testing.T) {
	e := UnprocessableEntity([]FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "price_cents", Message: "price_cents must be greater than 0"},
	})
	want := "name is required. price_cents must be greater than 0"
	if e.Message != want {
		t.Fatalf("message=%q want %q", e.Message, want)
	}
	if e.Status != http.StatusUnprocessableEntity || e.Code != CodeValidation {
		t.Fatalf("unexpected classification: %d %s", e.Status, e.Code)
	}
	if len(e.Fields) != 2 || e.Fields[0].Field != "name" {
		t.Fatalf("field order not preserved: %+v", e.Fields)
	}
}

func TestCodeForStatus_Table(t *testing.T) {
	cases := []struct {
		status int
		msg    string
		want   string
	}{
		{404, "Can't find GET /api/xyz on this server", CodeRouteNotFound},
		{404, "Resource not found", CodeResourceMissed},
		{401, "", CodeUnauthorized},
		{403, "", CodeForbidden},
		{400, "", CodeBadRequest},
		{409, "", CodeConflict},
		{422, "", CodeValidation},
		{429, "", CodeRateLimited},
		{405, "", CodeMethodNotAllow},
		{500, "", CodeServerError},
		{503, "", CodeServerError},
	}
	for _, tc := range cases {
		if got := CodeForStatus(tc.status, tc.msg); got != tc.want {
			t.Errorf("CodeForStatus(%d, %q)=%q want %q", tc.status, tc.msg, got, tc.want)
		}
	}
}

func TestNewOperational_ClampsStatus(t *testing.T) {
	e := newOperational(200, CodeBadRequest, "x")
	if e.Status < 400 || e.Status > 599 {
		t.Fatalf("status out of error range: %d", e.Status)
	}
}

func TestError_String(t *testing.T) {
	e := BadRequest("broken")
	if !strings.Contains(e.Error(), "BAD_REQUEST") || !strings.Contains(e.Error(), "broken") {
		t.Fatalf("unexpected Error(): %s", e.Error())
	}
}
