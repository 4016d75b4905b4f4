package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	legacyrouter "github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed bookingform.yaml
var embeddedDescription []byte

var (
	// ErrEmptyDescription is returned when Load receives no payload.
	ErrEmptyDescription = errors.New("openapi: description is empty")
	// ErrNoOperations is returned for descriptions without any operation.
	ErrNoOperations = errors.New("openapi: description declares no operations")
	// ErrRouteNotFound is returned when a request matches no documented route.
	ErrRouteNotFound = errors.New("openapi: route not found")
)

// Operation summarises one documented endpoint.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
}

// Description is a loaded and validated OpenAPI document plus the router
// used to check incoming requests against it.
type Description struct {
	spec   *openapi3.T
	router routers.Router
	json   []byte
}

// Load parses and validates raw (YAML or JSON).
func Load(ctx context.Context, raw []byte) (*Description, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, ErrEmptyDescription
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load description: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, ErrNoOperations
	}

	router, err := legacyrouter.NewRouter(spec, openapi3.DisableExamplesValidation())
	if err != nil {
		return nil, fmt.Errorf("openapi: build router: %w", err)
	}
	encoded, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode: %w", err)
	}
	return &Description{spec: spec, router: router, json: encoded}, nil
}

var (
	defaultOnce sync.Once
	defaultDesc *Description
	defaultErr  error
)

// Default returns the embedded booking form API description.
func Default() (*Description, error) {
	defaultOnce.Do(func() {
		defaultDesc, defaultErr = Load(context.Background(), embeddedDescription)
	})
	return defaultDesc, defaultErr
}

// Spec exposes the underlying kin-openapi document.
func (d *Description) Spec() *openapi3.T {
	return d.spec
}

// JSON returns the description encoded as JSON.
func (d *Description) JSON() []byte {
	return append([]byte(nil), d.json...)
}

// Operations lists the documented operations ordered by path then method.
func (d *Description) Operations() []Operation {
	var out []Operation
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out = append(out, Operation{ID: id, Method: method, Path: path, Summary: op.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}
		return out[i].Path < out[j].Path
	})
	return out
}

// ValidateRequest checks r (parameters and body) against the documented
// operation. The body is left readable for the next handler.
func (d *Description) ValidateRequest(r *http.Request) error {
	route, params, err := d.router.FindRoute(r)
	if err != nil {
		return fmt.Errorf("%w: %s %s", ErrRouteNotFound, r.Method, r.URL.Path)
	}
	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	}
	if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
		return fmt.Errorf("openapi: %s %s: %w", r.Method, r.URL.Path, err)
	}
	return nil
}

// Handler serves the description as JSON.
func (d *Description) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(d.json)
	})
}
