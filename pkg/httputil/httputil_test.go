package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/venntower/pkg/errors"
)

type request struct {
	Name  string   `json:"name" validate:"required,max=8"`
	Kinds []string `json:"kinds" validate:"omitempty,dive,oneof=a b"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		body    string
		wantErr string
	}{
		{`{"name":"ok"}`, ""},
		{`{"name":"ok","kinds":["a","b"]}`, ""},
		{`{}`, "Name: field is required"},
		{`{"name":"much too long"}`, "Name: must not exceed 8"},
		{`{"name":"ok","kinds":["c"]}`, "must be one of a b"},
		{`{"name":"ok","extra":1}`, "invalid request body"},
		{`{"name":"ok"} {}`, "trailing data"},
		{`not json`, "invalid request body"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		var req request
		err := Decode(r, &req)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("Decode(%s) = %v", tt.body, err)
			}
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidInput) || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("Decode(%s) = %v, want INVALID_INPUT containing %q", tt.body, err, tt.wantErr)
		}
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidStrategy, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidDescription, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeBackend, "x"), http.StatusServiceUnavailable},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	var logs strings.Builder
	logger := log.New(&logs)

	rec := httptest.NewRecorder()
	WriteError(rec, logger, errors.New(errors.ErrCodeNotFound, "run abc not found"))
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNotFound || body.Message != "run abc not found" || body.Code != "NOT_FOUND" {
		t.Errorf("got %d %+v", rec.Code, body)
	}

	rec = httptest.NewRecorder()
	WriteError(rec, logger, fmt.Errorf("disk at /secret/path failed"))
	body = ErrorResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(body.Message, "/secret/path") {
		t.Errorf("internal details leaked: %+v", body)
	}
	if body.Code != "INTERNAL_ERROR" || !strings.Contains(logs.String(), "/secret/path") {
		t.Errorf("code = %s, logs = %q", body.Code, logs.String())
	}
}
