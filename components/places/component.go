package places

import (
	"fmt"
	"net/http"
	"path"
	"strings"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Component bundles one Options value so the handler, mount path and Searcher
// all agree on route, parameters and data.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return c.opts.normalized()
}

// Path returns the route mounted under basePath.
func (c *Component) Path(basePath string) string {
	return joinRoute(basePath, c.opts.RoutePath)
}

func (c *Component) Handler() http.Handler {
	return newHandler(c.opts)
}

// RegisterRoutes mounts the handler under basePath and returns the pattern.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("places: missing mux")
	}
	pattern := c.Path(basePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}

// Searcher returns a latency-simulating searcher over the component's data.
func (c *Component) Searcher() (*Searcher, error) {
	opts := c.Options()
	return NewSearcher(func(o *Options) { *o = opts })
}

// MountPath returns the route for a component built from fns, under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return New(fns...).Path(basePath)
}

// RegisterRoutes is New(fns...).RegisterRoutes(mux, basePath).
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return New(fns...).RegisterRoutes(mux, basePath)
}

func joinRoute(basePath, routePath string) string {
	return path.Join("/", strings.TrimSpace(basePath), strings.TrimSpace(routePath))
}
