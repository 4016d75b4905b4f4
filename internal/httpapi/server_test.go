package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/testsupport"
)

func newTestServer(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	base := []Option{
		WithNow(testsupport.Clock()),
		WithIDGenerator(func() string { return "form-http" }),
	}
	srv, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPlaces(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/places?q=LONDON", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Data []model.LocationOption `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	labels := make([]string, 0, len(payload.Data))
	for _, option := range payload.Data {
		labels = append(labels, option.Label)
	}
	if diff := cmp.Diff([]string{"London", "Londonderry"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	rec = do(t, h, http.MethodGet, "/api/places", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 5 {
		t.Fatalf("empty query should return 5 places, got %d", len(payload.Data))
	}
}

func TestPlaces_RejectsUndocumentedParams(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/api/places?limit=abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("expected error payload, got %s", rec.Body.String())
	}
}

func TestPlaces_RateLimited(t *testing.T) {
	h := newTestServer(t, WithRateLimit(rate.Limit(0), 1))

	if rec := do(t, h, http.MethodGet, "/api/places?q=par", ""); rec.Code != http.StatusOK {
		t.Fatalf("first lookup: got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/places?q=par", ""); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second lookup: expected 429, got %d", rec.Code)
	}
}

func TestSearch_EchoesSnapshot(t *testing.T) {
	h := newTestServer(t)
	body := `{"from":"london","checkIn":"2026-03-12","checkOut":"2026-03-14","guests":[{"name":"adults","value":2},{"name":"children","value":1}]}`

	rec := do(t, h, http.MethodPost, "/api/search", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		FormID string                     `json:"form_id"`
		Data   map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.FormID != "form-http" {
		t.Fatalf("form id: got %q", payload.FormID)
	}

	values := map[string]string{}
	for _, name := range []string{"from", "to", "checkIn", "checkOut"} {
		var value string
		if err := json.Unmarshal(payload.Data[name], &value); err != nil {
			t.Fatalf("decode %s: %v", name, err)
		}
		values[name] = value
	}
	want := map[string]string{"from": "london", "to": "", "checkIn": "2026-03-12", "checkOut": "2026-03-14"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	var guests []model.GuestOption
	if err := json.Unmarshal(payload.Data["guests"], &guests); err != nil {
		t.Fatalf("decode guests: %v", err)
	}
	counts := map[string]int{}
	for _, guest := range guests {
		counts[guest.Name] = guest.Value
	}
	if diff := cmp.Diff(map[string]int{"adults": 2, "children": 1, "infants": 0}, counts); diff != "" {
		t.Fatalf("guests mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_Errors(t *testing.T) {
	h := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed", body: `{"from":`, want: http.StatusBadRequest},
		{name: "schema violation", body: `{"from":42}`, want: http.StatusBadRequest},
		{name: "unknown field", body: `{"pets":"dog"}`, want: http.StatusBadRequest},
		{name: "check in before today", body: `{"checkIn":"2026-03-01"}`, want: http.StatusUnprocessableEntity},
		{name: "check out before check in", body: `{"checkIn":"2026-03-12","checkOut":"2026-03-11"}`, want: http.StatusUnprocessableEntity},
		{name: "negative guest count", body: `{"guests":[{"name":"children","value":-1}]}`, want: http.StatusUnprocessableEntity},
		{name: "guest above max", body: `{"guests":[{"name":"adults","value":11}]}`, want: http.StatusUnprocessableEntity},
		{name: "unknown guest option", body: `{"guests":[{"name":"pets","value":1}]}`, want: http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/search", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSearch_AlternateFormats(t *testing.T) {
	h := newTestServer(t)
	body := `{"to":"paris","guests":[{"name":"adults","value":2}]}`

	rec := do(t, h, http.MethodPost, "/api/search?format=form", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("form status: got %d body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		t.Fatalf("form content type: %q", ct)
	}
	for _, part := range []string{"to=paris", "guests.adults=2", "form_id=form-http"} {
		if !strings.Contains(rec.Body.String(), part) {
			t.Fatalf("expected %q in %q", part, rec.Body.String())
		}
	}

	rec = do(t, h, http.MethodPost, "/api/search?format=pretty", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("pretty status: got %d body %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "Find your stay") {
		t.Fatalf("expected definition title first, got %q", rec.Body.String())
	}

	if rec := do(t, h, http.MethodPost, "/api/search?format=xml", body); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format: expected 400, got %d", rec.Code)
	}
}

func TestSearch_NegotiatesAcceptHeader(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/search", strings.NewReader(`{"to":"paris"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("expected text summary, got %q", ct)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/openapi.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"/api/places"`) {
		t.Fatalf("expected places path in document")
	}
}
