package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestFeedbackEndpoint(t *testing.T) {
	r := testRouter(t)

	body := `{"search_id": "abc-123", "property_id": "s1", "action": "click"}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("body should be empty, got %s", w.Body.String())
	}
}

func TestFeedbackEndpointInvalidAction(t *testing.T) {
	r := testRouter(t)

	body := `{"search_id": "abc-123", "property_id": "s1", "action": "purchase"}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/feedback", strings.NewReader(body))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Invalid action. Must be one of: click, contact, view_details" {
		t.Errorf("error = %q", resp["error"])
	}
}

func TestFeedbackEndpointMissingFields(t *testing.T) {
	r := testRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/v1/feedback", strings.NewReader(`{"action": "click"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
