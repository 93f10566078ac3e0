package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
)

// T is the subset of testing.TB the assertion helpers need.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t T, expected int) {
	t.Helper()
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertHeader checks a single response header value.
func (r *ResponseRecorder) AssertHeader(t T, key, expected string) {
	t.Helper()
	if got := r.Header().Get(key); got != expected {
		t.Errorf("%s: got %q, want %q", key, got, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t T, expected string) {
	t.Helper()
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// ErrorBody mirrors the JSON error envelope written by the API.
type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// DecodeError parses the response body as an error envelope.
// A body that is not an envelope is reported and yields the zero value.
func (r *ResponseRecorder) DecodeError(t T) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(r.Body.Bytes(), &body); err != nil {
		t.Errorf("failed to parse error body %q: %v", r.Body.String(), err)
	}
	return body
}

// AssertErrorCode checks status, JSON content type and error code together.
func (r *ResponseRecorder) AssertErrorCode(t T, status int, code string) ErrorBody {
	t.Helper()
	r.AssertStatus(t, status)
	r.AssertHeader(t, "Content-Type", "application/json")
	body := r.DecodeError(t)
	if body.Error.Code != code {
		t.Errorf("error.code: got %q, want %q", body.Error.Code, code)
	}
	return body
}
