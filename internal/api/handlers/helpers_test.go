package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

// jsonBody wraps a raw JSON string for use as a request body.
func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

// assertErrorMessage decodes an error response and checks its message field.
func assertErrorMessage(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Message != want {
		t.Errorf("Error message = %q, want %q", resp.Message, want)
	}
}
