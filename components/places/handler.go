package places

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/goliatone/go-bookingform/pkg/model"
)

// HTTPError lets guard errors pick the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a guard rejection carrying an HTTP status.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type lookupResponse struct {
	Data []model.LocationOption `json:"data"`
}

type handler struct {
	catalog *Catalog
	opts    Options
	loadErr error
}

// Handler serves GET and HEAD lookups against the catalog described by fns.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	return newHandler(NewOptions(fns...))
}

func newHandler(opts Options) *handler {
	catalog, err := newCatalog(opts)
	return &handler{catalog: catalog, opts: opts, loadErr: err}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeJSONError(w, http.StatusMethodNotAllowed)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeJSONError(w, guardStatus(err))
			return
		}
	}
	if h.loadErr != nil {
		writeJSONError(w, http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get(h.opts.LimitParam))
	results := h.catalog.Lookup(query.Get(h.opts.SearchParam), limit)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_ = json.NewEncoder(w).Encode(lookupResponse{Data: results})
}

func guardStatus(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
		return httpErr.StatusCode()
	}
	return http.StatusForbidden
}

func writeJSONError(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(code)})
}
