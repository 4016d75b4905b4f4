package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_ListsOperations(t *testing.T) {
	desc, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	got := desc.Operations()
	want := []Operation{
		{ID: "searchPlaces", Method: http.MethodGet, Path: "/api/places", Summary: "Look up known places by case-insensitive substring."},
		{ID: "submitSearch", Method: http.MethodPost, Path: "/api/search", Summary: "Check a form snapshot against the schema and echo it back."},
		{ID: "describeAPI", Method: http.MethodGet, Path: "/openapi.json", Summary: "This document."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(context.Background(), []byte("  ")); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("expected ErrEmptyDescription, got %v", err)
	}
	if _, err := Load(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatal("expected parse error")
	}

	noPaths := "openapi: 3.0.3\ninfo:\n  title: x\n  version: '1'\npaths: {}\n"
	if _, err := Load(context.Background(), []byte(noPaths)); !errors.Is(err, ErrNoOperations) {
		t.Fatalf("expected ErrNoOperations, got %v", err)
	}
}

func TestValidateRequest(t *testing.T) {
	desc, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	cases := []struct {
		name    string
		method  string
		target  string
		body    string
		wantErr bool
	}{
		{name: "places query", method: http.MethodGet, target: "/api/places?q=lon&limit=3"},
		{name: "places bad limit", method: http.MethodGet, target: "/api/places?limit=abc", wantErr: true},
		{name: "places limit too large", method: http.MethodGet, target: "/api/places?limit=500", wantErr: true},
		{
			name:   "search snapshot",
			method: http.MethodPost,
			target: "/api/search",
			body:   `{"from":"london","checkIn":"2026-03-12","guests":[{"name":"adults","value":2}]}`,
		},
		{
			name:    "search guest without name",
			method:  http.MethodPost,
			target:  "/api/search",
			body:    `{"guests":[{"value":2}]}`,
			wantErr: true,
		},
		{
			name:    "search numeric field",
			method:  http.MethodPost,
			target:  "/api/search",
			body:    `{"from":12}`,
			wantErr: true,
		},
		{name: "unknown route", method: http.MethodGet, target: "/api/unknown", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			req := httptest.NewRequest(tc.method, tc.target, body)
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			err := desc.ValidateRequest(req)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.body != "" && !tc.wantErr {
				rest, _ := io.ReadAll(req.Body)
				if string(rest) != tc.body {
					t.Fatalf("body not restored: %q", rest)
				}
			}
		})
	}
}

func TestHandler_ServesJSON(t *testing.T) {
	desc, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}

	rec := httptest.NewRecorder()
	desc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.OpenAPI != "3.0.3" {
		t.Fatalf("openapi version: got %q", doc.OpenAPI)
	}
	if _, ok := doc.Paths["/api/search"]; !ok {
		t.Fatalf("expected /api/search in paths, got %v", doc.Paths)
	}
}
