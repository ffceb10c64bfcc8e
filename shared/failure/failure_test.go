package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"innkeep/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "ErrNotSignedIn",
			failure: failure.ErrNotSignedIn,
			code:    http.StatusUnauthorized,
			message: "must be logged in",
		},
		{
			name:    "ErrNoStaffAccount",
			failure: failure.ErrNoStaffAccount,
			code:    http.StatusForbidden,
			message: "Unauthorized: No staff account found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, tt.failure.Code)
			}

			if tt.failure.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"BadRequest", failure.BadRequest(errors.New("bad")), http.StatusBadRequest},
		{"BadRequestFromString", failure.BadRequestFromString("bad"), http.StatusBadRequest},
		{"Unauthorized", failure.Unauthorized("no"), http.StatusUnauthorized},
		{"Forbidden", failure.Forbidden("no"), http.StatusForbidden},
		{"NotFound", failure.NotFound("room"), http.StatusNotFound},
		{"Conflict", failure.Conflict("already booked"), http.StatusConflict},
		{"InternalError", failure.InternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Remote", failure.Remote(http.StatusBadGateway, "upstream"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetCode_NonFailure(t *testing.T) {
	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected fallback 500, got %d", got)
	}
}

func TestBadRequest_Nil(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected nil for nil error")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil error")
	}
}
