package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
)

func TestPropertyEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/properties/s1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var p model.Property
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if p.ID != "s1" || p.Title != "Modern Downtown Condo" {
		t.Errorf("unexpected property %+v", p)
	}
}

func TestPropertyEndpointNotFound(t *testing.T) {
	r := testRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/v1/properties/no-such-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != "Property not found" {
		t.Errorf("error = %q", body["error"])
	}
}
