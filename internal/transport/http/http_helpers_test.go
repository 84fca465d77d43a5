package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 50, 0},
		{"limit=10&offset=5", 10, 5},
		{"limit=0", 1, 0},
		{"limit=9999", 500, 0},
		{"offset=-3", 50, 0},
		{"limit=abc&offset=xyz", 50, 0},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/?"+tc.query, nil)
		limit, offset := ParsePagination(req)
		if limit != tc.wantLimit || offset != tc.wantOffset {
			t.Fatalf("query %q: got (%d, %d), want (%d, %d)", tc.query, limit, offset, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestWriteHTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteHTTPError(rec, http.StatusBadRequest, "invalid_stake")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "invalid_stake" {
		t.Fatalf("body %v", body)
	}
}
