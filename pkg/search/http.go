package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// HTTPConfig describes a remote endpoint returning location options.
type HTTPConfig struct {
	URL         string
	Method      string
	SearchParam string
	LimitParam  string
	Limit       int
	// ResultsPath is the dotted path to the result list inside the payload.
	ResultsPath string
	ValueField  string
	LabelField  string
	Params      map[string]string
}

// HTTPSearcher queries a remote endpoint for each search.
type HTTPSearcher struct {
	client *http.Client
	cfg    HTTPConfig
}

var _ Searcher = (*HTTPSearcher)(nil)

// NewHTTPSearcher builds a searcher for cfg. A nil client uses
// http.DefaultClient.
func NewHTTPSearcher(client *http.Client, cfg HTTPConfig) (*HTTPSearcher, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("search: endpoint url is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("search: parse url: %w", err)
	}
	cfg.Method = strings.ToUpper(strings.TrimSpace(cfg.Method))
	if cfg.Method == "" {
		cfg.Method = http.MethodGet
	}
	if cfg.SearchParam == "" {
		cfg.SearchParam = "q"
	}
	if cfg.ValueField == "" {
		cfg.ValueField = "value"
	}
	if cfg.LabelField == "" {
		cfg.LabelField = "label"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSearcher{client: client, cfg: cfg}, nil
}

// Search issues one request per call; failures are returned to the caller
// unchanged apart from wrapping.
func (s *HTTPSearcher) Search(ctx context.Context, query string) ([]model.LocationOption, error) {
	reqURL, err := url.Parse(s.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("search: parse url: %w", err)
	}
	q := reqURL.Query()
	for k, v := range s.cfg.Params {
		q.Set(k, v)
	}
	q.Set(s.cfg.SearchParam, query)
	if s.cfg.LimitParam != "" && s.cfg.Limit > 0 {
		q.Set(s.cfg.LimitParam, strconv.Itoa(s.cfg.Limit))
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, s.cfg.Method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("search: request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search: decode: %w", err)
	}

	items := extractResults(payload, s.cfg.ResultsPath)
	out := make([]model.LocationOption, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		val := pickValue(obj, s.cfg.ValueField)
		lbl := pickValue(obj, s.cfg.LabelField)
		if val == "" {
			continue
		}
		if lbl == "" {
			lbl = val
		}
		out = append(out, model.LocationOption{Value: val, Label: lbl})
	}
	return out, nil
}

func extractResults(payload any, path string) []any {
	if payload == nil {
		return nil
	}
	cur := payload
	if path != "" {
		for _, segment := range strings.Split(path, ".") {
			node, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = node[segment]
		}
	}
	list, _ := cur.([]any)
	return list
}

func pickValue(m map[string]any, path string) string {
	if path == "" {
		return ""
	}
	cur := any(m)
	for _, segment := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = node[segment]
	}
	if cur == nil {
		return ""
	}
	return fmt.Sprint(cur)
}
